package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func printProto(cmd *cobra.Command, m proto.Message) error {
	b, err := protojson.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func printState(ctx context.Context, cmd *cobra.Command, client playerv1.PlayerClient) error {
	if quiet {
		return nil
	}
	state, err := client.GetState(ctx, &emptypb.Empty{})
	if err != nil {
		return fmt.Errorf("get state: %w", err)
	}
	return printProto(cmd, state)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current player state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client playerv1.PlayerClient) error {
			ctx, cancel := unaryContext(cmd)
			defer cancel()
			state, err := client.GetState(ctx, &emptypb.Empty{})
			if err != nil {
				return fmt.Errorf("get state: %w", err)
			}
			return printProto(cmd, state)
		})
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Print the transcript as currently displayed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client playerv1.PlayerClient) error {
			ctx, cancel := unaryContext(cmd)
			defer cancel()
			words, err := client.GetWords(ctx, &emptypb.Empty{})
			if err != nil {
				return fmt.Errorf("get words: %w", err)
			}
			return printProto(cmd, words)
		})
	},
}

type openStream func(playerv1.PlayerClient, context.Context, *emptypb.Empty, ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)

func streamCmd(use, short string, open openStream) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client playerv1.PlayerClient) error {
				stream, err := open(client, cmd.Context(), &emptypb.Empty{})
				if err != nil {
					return fmt.Errorf("%s: %w", use, err)
				}
				for {
					msg, err := stream.Recv()
					if errors.Is(err, io.EOF) {
						return nil
					}
					if err != nil {
						return fmt.Errorf("recv: %w", err)
					}
					if err := printProto(cmd, msg); err != nil {
						return err
					}
				}
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(
		stateCmd,
		wordsCmd,
		streamCmd("watch", "Stream state changes until interrupted", playerv1.PlayerClient.Watch),
		streamCmd("notifications", "Stream rejected edits until interrupted", playerv1.PlayerClient.Notifications),
	)
}
