package server

import (
	"errors"

	"github.com/ciricc/go-transcript-player/internal/edit"
	"github.com/ciricc/go-transcript-player/internal/engine"
	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/playback"
	"github.com/ciricc/go-transcript-player/internal/transcript"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func mapSnapshotToStruct(s engine.Snapshot) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"mode":              structpb.NewStringValue(s.Mode.String()),
		"current_time_ms":   structpb.NewNumberValue(float64(s.CurrentTime.Milliseconds())),
		"total_duration_ms": structpb.NewNumberValue(float64(s.TotalDuration.Milliseconds())),
		"current_time":      structpb.NewStringValue(playback.FormatTime(s.CurrentTime)),
		"total_duration":    structpb.NewStringValue(playback.FormatTime(s.TotalDuration)),
		"finished":          structpb.NewBoolValue(s.Finished),
		"at_end":            structpb.NewBoolValue(s.AtEnd),
		"highlight_index":   structpb.NewNumberValue(float64(s.HighlightIndex)),
		"editing":           structpb.NewBoolValue(s.Editing),
		"edit_index":        structpb.NewNumberValue(float64(s.EditIndex)),
	}}
}

func mapWordsToList(words []word.Word) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(words))
	for _, w := range words {
		values = append(values, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"word":       structpb.NewStringValue(w.Text),
			"start_time": structpb.NewNumberValue(float64(w.Start.Milliseconds())),
			"duration":   structpb.NewNumberValue(float64(w.Duration.Milliseconds())),
		}}))
	}
	return &structpb.ListValue{Values: values}
}

func mapEventToStruct(e notify.Event) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind":     structpb.NewStringValue(string(e.Kind)),
		"message":  structpb.NewStringValue(e.Message),
		"index":    structpb.NewNumberValue(float64(e.Index)),
		"proposed": structpb.NewStringValue(e.Proposed),
	}}
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transcript.ErrIndexOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, edit.ErrNoSession):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
