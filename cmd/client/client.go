package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

type flags struct {
	httpAddr string
	grpcAddr string
	timeout  time.Duration
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := slogx.InitGlobal(os.Stderr, "info", true); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	return newRootCmd(os.Stdout).ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "notes-client",
		Short:         "Talk to a running video notes server",
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&f.httpAddr, "addr", "http://127.0.0.1:8000", "HTTP API base url")
	root.PersistentFlags().StringVar(&f.grpcAddr, "grpc-addr", "127.0.0.1:50051", "gRPC address for health checks")
	root.PersistentFlags().DurationVar(&f.timeout, "timeout", 10*time.Second, "per-call timeout")

	root.AddCommand(
		healthCmd(f, out),
		createCmd(f, out),
		listCmd(f, out),
		searchCmd(f, out),
		updateCmd(f, out),
		deleteCmd(f, out),
		recentCmd(f, out),
	)

	return root
}

func (f *flags) client() *v1.Client {
	return v1.NewClient(f.httpAddr, nil)
}

func (f *flags) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), f.timeout)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("note id must be an integer: %q", s)
	}

	return id, nil
}

func healthCmd(f *flags, out io.Writer) *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health over gRPC and HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := f.ctx(cmd)
			defer cancel()

			conn, err := grpc.NewClient(f.grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("new client conn: %v", err)
			}
			defer conn.Close()

			resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
			if err != nil {
				return fmt.Errorf("grpc health check: %v", err)
			}

			h, err := f.client().Health(ctx)
			if err != nil {
				return fmt.Errorf("http health check: %v", err)
			}

			return printJSON(out, map[string]string{
				"grpc":    resp.GetStatus().String(),
				"status":  h.Status,
				"message": h.Message,
			})
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "gRPC service name to check")

	return cmd
}

func createCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "create VIDEO_ID TIMESTAMP TEXT",
		Short: "Create a note",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("timestamp must be a number: %q", args[1])
			}

			ctx, cancel := f.ctx(cmd)
			defer cancel()

			note, err := f.client().CreateNote(ctx, args[0], ts, args[2])
			if err != nil {
				return err
			}

			return printJSON(out, note)
		},
	}
}

func listCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list VIDEO_ID",
		Short: "List notes of a video ordered by timestamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := f.ctx(cmd)
			defer cancel()

			notes, err := f.client().ListNotes(ctx, args[0])
			if err != nil {
				return err
			}

			return printJSON(out, notes)
		},
	}
}

func searchCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search notes by text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := f.ctx(cmd)
			defer cancel()

			notes, err := f.client().SearchNotes(ctx, args[0])
			if err != nil {
				return err
			}

			return printJSON(out, notes)
		},
	}
}

func updateCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "update NOTE_ID TEXT",
		Short: "Replace the text of a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := f.ctx(cmd)
			defer cancel()

			note, err := f.client().UpdateNote(ctx, id, args[1])
			if err != nil {
				return err
			}

			return printJSON(out, note)
		},
	}
}

func deleteCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NOTE_ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := f.ctx(cmd)
			defer cancel()

			if err := f.client().DeleteNote(ctx, id); err != nil {
				return err
			}

			slogx.Info(ctx, "note deleted", slogx.NoteID(id))
			return printJSON(out, v1.Message{Message: "Note deleted successfully"})
		},
	}
}

func recentCmd(f *flags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recently annotated videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := f.ctx(cmd)
			defer cancel()

			videos, err := f.client().RecentVideos(ctx)
			if err != nil {
				return err
			}

			return printJSON(out, videos)
		},
	}
}
