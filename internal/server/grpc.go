package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/ciricc/go-transcript-player/internal/engine"
	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/ciricc/go-transcript-player/internal/monitor"
	"github.com/ciricc/go-transcript-player/internal/notify"
	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Player is the engine surface the server drives.
type Player interface {
	Play()
	Pause()
	Stop()
	SeekBegin()
	SeekTo(t time.Duration)
	SeekEnd()
	BeginEdit(index int) error
	ChangeText(text string) (bool, error)
	CommitEdit() error
	Snapshot() engine.Snapshot
	Words() []word.Word
	DisplayText(index int) (string, error)
	Subscribe() (<-chan engine.Snapshot, func())
}

// Notifications is a source of rejected-edit events.
type Notifications interface {
	Subscribe() (<-chan notify.Event, func())
}

type PlayerServer struct {
	playerv1.UnimplementedPlayerServer
	Log           *slog.Logger
	player        Player
	notifications Notifications
	loadMonitor   monitor.LoadMonitor
}

func NewPlayerServer(
	log *slog.Logger,
	player Player,
	notifications Notifications,
	loadMonitor monitor.LoadMonitor,
) *PlayerServer {
	return &PlayerServer{
		Log:           log,
		player:        player,
		notifications: notifications,
		loadMonitor:   loadMonitor,
	}
}

func (s *PlayerServer) Play(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	s.player.Play()
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) Pause(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	s.player.Pause()
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) Stop(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	s.player.Stop()
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) SeekBegin(_ context.Context, req *durationpb.Duration) (*emptypb.Empty, error) {
	s.player.SeekBegin()
	if req != nil {
		s.player.SeekTo(req.AsDuration())
	}
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) SeekUpdate(_ context.Context, req *durationpb.Duration) (*emptypb.Empty, error) {
	s.player.SeekTo(req.AsDuration())
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) SeekEnd(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	s.player.SeekEnd()
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) BeginEdit(ctx context.Context, req *wrapperspb.Int32Value) (*emptypb.Empty, error) {
	if err := s.player.BeginEdit(int(req.GetValue())); err != nil {
		s.Log.ErrorContext(ctx, "BeginEdit failed", "index", req.GetValue(), "error", err)
		return nil, mapError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) ChangeText(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	accepted, err := s.player.ChangeText(req.GetValue())
	if err != nil {
		return nil, mapError(err)
	}
	return wrapperspb.Bool(accepted), nil
}

func (s *PlayerServer) CommitEdit(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.player.CommitEdit(); err != nil {
		s.Log.ErrorContext(ctx, "CommitEdit failed", "error", err)
		return nil, mapError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *PlayerServer) GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return mapSnapshotToStruct(s.player.Snapshot()), nil
}

func (s *PlayerServer) GetWords(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return mapWordsToList(s.player.Words()), nil
}

func (s *PlayerServer) DisplayText(_ context.Context, req *wrapperspb.Int32Value) (*wrapperspb.StringValue, error) {
	text, err := s.player.DisplayText(int(req.GetValue()))
	if err != nil {
		return nil, mapError(err)
	}
	return wrapperspb.String(text), nil
}

// Watch streams the current state and then every change.
func (s *PlayerServer) Watch(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()
	log := s.Log.With("method", "Watch")

	release, err := s.acquireStream()
	if err != nil {
		log.DebugContext(ctx, "stream rejected", "error", err)
		return err
	}
	defer release()

	snapshots, cancel := s.player.Subscribe()
	defer cancel()

	if err := stream.Send(mapSnapshotToStruct(s.player.Snapshot())); err != nil {
		return err
	}

	log.DebugContext(ctx, "watch started")
	return forward(ctx, snapshots, stream, mapSnapshotToStruct)
}

// Notifications streams rejected edits as they happen.
func (s *PlayerServer) Notifications(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()
	log := s.Log.With("method", "Notifications")

	release, err := s.acquireStream()
	if err != nil {
		log.DebugContext(ctx, "stream rejected", "error", err)
		return err
	}
	defer release()

	events, cancel := s.notifications.Subscribe()
	defer cancel()

	log.DebugContext(ctx, "notifications started")
	return forward(ctx, events, stream, mapEventToStruct)
}

func (s *PlayerServer) acquireStream() (func(), error) {
	if !s.loadMonitor.TryAcquire() {
		return nil, status.Error(codes.ResourceExhausted, "too many open streams")
	}
	return s.loadMonitor.Release, nil
}

func forward[T any](
	ctx context.Context,
	in <-chan T,
	stream grpc.ServerStreamingServer[structpb.Struct],
	mapFn func(T) *structpb.Struct,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-in:
			if !ok {
				return nil
			}
			if err := stream.Send(mapFn(v)); err != nil {
				return err
			}
		}
	}
}

var _ playerv1.PlayerServer = (*PlayerServer)(nil)
