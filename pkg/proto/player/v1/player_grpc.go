// Package playerv1 defines the player.v1.Player gRPC service. Its messages are
// protobuf well-known types, so the service needs no generated message code.
package playerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "player.v1.Player"

const (
	Player_Play_FullMethodName          = "/player.v1.Player/Play"
	Player_Pause_FullMethodName         = "/player.v1.Player/Pause"
	Player_Stop_FullMethodName          = "/player.v1.Player/Stop"
	Player_SeekBegin_FullMethodName     = "/player.v1.Player/SeekBegin"
	Player_SeekUpdate_FullMethodName    = "/player.v1.Player/SeekUpdate"
	Player_SeekEnd_FullMethodName       = "/player.v1.Player/SeekEnd"
	Player_BeginEdit_FullMethodName     = "/player.v1.Player/BeginEdit"
	Player_ChangeText_FullMethodName    = "/player.v1.Player/ChangeText"
	Player_CommitEdit_FullMethodName    = "/player.v1.Player/CommitEdit"
	Player_GetState_FullMethodName      = "/player.v1.Player/GetState"
	Player_GetWords_FullMethodName      = "/player.v1.Player/GetWords"
	Player_DisplayText_FullMethodName   = "/player.v1.Player/DisplayText"
	Player_Watch_FullMethodName         = "/player.v1.Player/Watch"
	Player_Notifications_FullMethodName = "/player.v1.Player/Notifications"
)

// PlayerServer is the server API for the Player service.
type PlayerServer interface {
	Play(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Pause(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Stop(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	// SeekBegin starts a drag and moves the cursor to the given time.
	SeekBegin(context.Context, *durationpb.Duration) (*emptypb.Empty, error)
	SeekUpdate(context.Context, *durationpb.Duration) (*emptypb.Empty, error)
	SeekEnd(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	BeginEdit(context.Context, *wrapperspb.Int32Value) (*emptypb.Empty, error)
	// ChangeText reports whether the proposed text was accepted.
	ChangeText(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	CommitEdit(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetWords(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	DisplayText(context.Context, *wrapperspb.Int32Value) (*wrapperspb.StringValue, error)
	Watch(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
	Notifications(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// UnimplementedPlayerServer answers every call with codes.Unimplemented.
type UnimplementedPlayerServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPlayerServer) Play(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented("Play")
}
func (UnimplementedPlayerServer) Pause(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented("Pause")
}
func (UnimplementedPlayerServer) Stop(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented("Stop")
}
func (UnimplementedPlayerServer) SeekBegin(context.Context, *durationpb.Duration) (*emptypb.Empty, error) {
	return nil, unimplemented("SeekBegin")
}
func (UnimplementedPlayerServer) SeekUpdate(context.Context, *durationpb.Duration) (*emptypb.Empty, error) {
	return nil, unimplemented("SeekUpdate")
}
func (UnimplementedPlayerServer) SeekEnd(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented("SeekEnd")
}
func (UnimplementedPlayerServer) BeginEdit(context.Context, *wrapperspb.Int32Value) (*emptypb.Empty, error) {
	return nil, unimplemented("BeginEdit")
}
func (UnimplementedPlayerServer) ChangeText(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, unimplemented("ChangeText")
}
func (UnimplementedPlayerServer) CommitEdit(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, unimplemented("CommitEdit")
}
func (UnimplementedPlayerServer) GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, unimplemented("GetState")
}
func (UnimplementedPlayerServer) GetWords(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, unimplemented("GetWords")
}
func (UnimplementedPlayerServer) DisplayText(context.Context, *wrapperspb.Int32Value) (*wrapperspb.StringValue, error) {
	return nil, unimplemented("DisplayText")
}
func (UnimplementedPlayerServer) Watch(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error {
	return unimplemented("Watch")
}
func (UnimplementedPlayerServer) Notifications(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error {
	return unimplemented("Notifications")
}

func RegisterPlayerServer(s grpc.ServiceRegistrar, srv PlayerServer) {
	s.RegisterService(&Player_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(PlayerServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlayerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PlayerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func streamHandler(
	call func(PlayerServer, *emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error,
) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		in := new(emptypb.Empty)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return call(srv.(PlayerServer), in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
	}
}

// Player_ServiceDesc is the grpc.ServiceDesc for the Player service.
var Player_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlayerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Play", Handler: unaryHandler(Player_Play_FullMethodName, PlayerServer.Play)},
		{MethodName: "Pause", Handler: unaryHandler(Player_Pause_FullMethodName, PlayerServer.Pause)},
		{MethodName: "Stop", Handler: unaryHandler(Player_Stop_FullMethodName, PlayerServer.Stop)},
		{MethodName: "SeekBegin", Handler: unaryHandler(Player_SeekBegin_FullMethodName, PlayerServer.SeekBegin)},
		{MethodName: "SeekUpdate", Handler: unaryHandler(Player_SeekUpdate_FullMethodName, PlayerServer.SeekUpdate)},
		{MethodName: "SeekEnd", Handler: unaryHandler(Player_SeekEnd_FullMethodName, PlayerServer.SeekEnd)},
		{MethodName: "BeginEdit", Handler: unaryHandler(Player_BeginEdit_FullMethodName, PlayerServer.BeginEdit)},
		{MethodName: "ChangeText", Handler: unaryHandler(Player_ChangeText_FullMethodName, PlayerServer.ChangeText)},
		{MethodName: "CommitEdit", Handler: unaryHandler(Player_CommitEdit_FullMethodName, PlayerServer.CommitEdit)},
		{MethodName: "GetState", Handler: unaryHandler(Player_GetState_FullMethodName, PlayerServer.GetState)},
		{MethodName: "GetWords", Handler: unaryHandler(Player_GetWords_FullMethodName, PlayerServer.GetWords)},
		{MethodName: "DisplayText", Handler: unaryHandler(Player_DisplayText_FullMethodName, PlayerServer.DisplayText)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Watch", Handler: streamHandler(PlayerServer.Watch), ServerStreams: true},
		{StreamName: "Notifications", Handler: streamHandler(PlayerServer.Notifications), ServerStreams: true},
	},
	Metadata: "player/v1/player.proto",
}
