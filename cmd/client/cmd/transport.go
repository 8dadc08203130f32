package cmd

import (
	"context"
	"fmt"
	"time"

	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
)

type emptyCall func(playerv1.PlayerClient, context.Context, *emptypb.Empty, ...grpc.CallOption) (*emptypb.Empty, error)

func transportCmd(use, short string, call emptyCall) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client playerv1.PlayerClient) error {
				ctx, cancel := unaryContext(cmd)
				defer cancel()
				if _, err := call(client, ctx, &emptypb.Empty{}); err != nil {
					return fmt.Errorf("%s: %w", use, err)
				}
				return printState(ctx, cmd, client)
			})
		},
	}
}

var seekCmd = &cobra.Command{
	Use:   "seek <time>",
	Short: "Scrub to a position, e.g. 1m5s or 650ms",
	Long: `Seek performs a complete drag: it begins a seek at the given time and
ends it, so a playing transcript keeps playing from the new position.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("parse time: %w", err)
		}

		return withClient(func(client playerv1.PlayerClient) error {
			ctx, cancel := unaryContext(cmd)
			defer cancel()

			if _, err := client.SeekBegin(ctx, durationpb.New(at)); err != nil {
				return fmt.Errorf("seek begin: %w", err)
			}
			if _, err := client.SeekEnd(ctx, &emptypb.Empty{}); err != nil {
				return fmt.Errorf("seek end: %w", err)
			}
			return printState(ctx, cmd, client)
		})
	},
}

func init() {
	rootCmd.AddCommand(
		transportCmd("play", "Start or resume playback", playerv1.PlayerClient.Play),
		transportCmd("pause", "Pause playback", playerv1.PlayerClient.Pause),
		transportCmd("stop", "Stop and rewind to the beginning", playerv1.PlayerClient.Stop),
		seekCmd,
	)
}
