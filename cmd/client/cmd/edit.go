package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var editCmd = &cobra.Command{
	Use:   "edit <index> <text>",
	Short: "Replace the text of one word",
	Long: `Edit opens an edit session on the word at index, proposes the new text
and commits it. A rejected proposal leaves the word unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("parse index: %w", err)
		}
		index := int32(parsed)

		return withClient(func(client playerv1.PlayerClient) error {
			ctx, cancel := unaryContext(cmd)
			defer cancel()

			if _, err := client.BeginEdit(ctx, wrapperspb.Int32(index)); err != nil {
				return fmt.Errorf("begin edit: %w", err)
			}

			accepted, err := client.ChangeText(ctx, wrapperspb.String(args[1]))
			if err != nil {
				return fmt.Errorf("change text: %w", err)
			}
			if !accepted.GetValue() {
				slog.Warn("text rejected, keeping previous word", "index", index, "text", args[1])
			}

			if _, err := client.CommitEdit(ctx, &emptypb.Empty{}); err != nil {
				return fmt.Errorf("commit edit: %w", err)
			}

			text, err := client.DisplayText(ctx, wrapperspb.Int32(index))
			if err != nil {
				return fmt.Errorf("display text: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", index, text.GetValue())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
