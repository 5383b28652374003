package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"calculator_lab/internal/grpcserver"
)

const usageLine = "Usage: <a> <op> <b>   (op is one of + - * /; quit to exit)"

func evalCmd(quiet *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [--] <a> <op> <b>",
		Short: "Evaluate one expression locally and print the result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			newLocalHandler(cmd, *quiet).Submit(cmd.Context(), requestFromArgs(args))
			return nil
		},
	}
}

func replCmd(quiet *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read <a> <op> <b> lines from stdin, one calculation per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := newLocalHandler(cmd, *quiet)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, usageLine)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					break
				}

				fields := strings.Fields(line)
				if len(fields) != 3 {
					fmt.Fprintln(out, usageLine)
					continue
				}
				h.Submit(cmd.Context(), requestFromArgs(fields))
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		},
	}
}

func remoteCmd() *cobra.Command {
	var addr string
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "remote [--] <a> <op> <b>",
		Short: "Evaluate one expression on a calculator gRPC server",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := grpcserver.NewClient(addr)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			resp, err := client.Evaluate(ctx, requestFromArgs(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Display)
			return nil
		},
	}

	c.Flags().StringVarP(&addr, "addr", "a", "localhost:50051", "calculator gRPC server address")
	c.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return c
}
