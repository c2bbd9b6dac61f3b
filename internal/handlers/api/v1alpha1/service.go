package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dicetray.api.v1alpha1.DiceTrayService"

// Full method names of the dice tray service
const (
	DiceTrayService_ListSets_FullMethodName      = "/" + ServiceName + "/ListSets"
	DiceTrayService_RollDice_FullMethodName      = "/" + ServiceName + "/RollDice"
	DiceTrayService_FinishDie_FullMethodName     = "/" + ServiceName + "/FinishDie"
	DiceTrayService_Reroll_FullMethodName        = "/" + ServiceName + "/Reroll"
	DiceTrayService_ClearRoll_FullMethodName     = "/" + ServiceName + "/ClearRoll"
	DiceTrayService_GetRoll_FullMethodName       = "/" + ServiceName + "/GetRoll"
	DiceTrayService_CloseTray_FullMethodName     = "/" + ServiceName + "/CloseTray"
	DiceTrayService_ListHistory_FullMethodName   = "/" + ServiceName + "/ListHistory"
	DiceTrayService_RemoveHistory_FullMethodName = "/" + ServiceName + "/RemoveHistory"
	DiceTrayService_RerollHistory_FullMethodName = "/" + ServiceName + "/RerollHistory"
	DiceTrayService_PreviewRoll_FullMethodName   = "/" + ServiceName + "/PreviewRoll"
)

// DiceTrayServiceServer is the server API for the dice tray service.
// Every message is a google.protobuf.Struct holding the JSON shape of the
// request or response.
type DiceTrayServiceServer interface {
	ListSets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FinishDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseTray(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RerollHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PreviewRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(DiceTrayServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DiceTrayServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DiceTrayServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DiceTrayService_ServiceDesc is the grpc.ServiceDesc for the dice tray service
var DiceTrayService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiceTrayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListSets",
			Handler:    unaryHandler(DiceTrayService_ListSets_FullMethodName, DiceTrayServiceServer.ListSets),
		},
		{
			MethodName: "RollDice",
			Handler:    unaryHandler(DiceTrayService_RollDice_FullMethodName, DiceTrayServiceServer.RollDice),
		},
		{
			MethodName: "FinishDie",
			Handler:    unaryHandler(DiceTrayService_FinishDie_FullMethodName, DiceTrayServiceServer.FinishDie),
		},
		{
			MethodName: "Reroll",
			Handler:    unaryHandler(DiceTrayService_Reroll_FullMethodName, DiceTrayServiceServer.Reroll),
		},
		{
			MethodName: "ClearRoll",
			Handler:    unaryHandler(DiceTrayService_ClearRoll_FullMethodName, DiceTrayServiceServer.ClearRoll),
		},
		{
			MethodName: "GetRoll",
			Handler:    unaryHandler(DiceTrayService_GetRoll_FullMethodName, DiceTrayServiceServer.GetRoll),
		},
		{
			MethodName: "CloseTray",
			Handler:    unaryHandler(DiceTrayService_CloseTray_FullMethodName, DiceTrayServiceServer.CloseTray),
		},
		{
			MethodName: "ListHistory",
			Handler:    unaryHandler(DiceTrayService_ListHistory_FullMethodName, DiceTrayServiceServer.ListHistory),
		},
		{
			MethodName: "RemoveHistory",
			Handler:    unaryHandler(DiceTrayService_RemoveHistory_FullMethodName, DiceTrayServiceServer.RemoveHistory),
		},
		{
			MethodName: "RerollHistory",
			Handler:    unaryHandler(DiceTrayService_RerollHistory_FullMethodName, DiceTrayServiceServer.RerollHistory),
		},
		{
			MethodName: "PreviewRoll",
			Handler:    unaryHandler(DiceTrayService_PreviewRoll_FullMethodName, DiceTrayServiceServer.PreviewRoll),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dicetray/api/v1alpha1/dice_tray.proto",
}

// RegisterDiceTrayServiceServer registers srv on s
func RegisterDiceTrayServiceServer(s grpc.ServiceRegistrar, srv DiceTrayServiceServer) {
	s.RegisterService(&DiceTrayService_ServiceDesc, srv)
}

// DiceTrayServiceClient is the client API for the dice tray service
type DiceTrayServiceClient interface {
	// Call invokes method, one of the MethodName values of the service
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type diceTrayServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiceTrayServiceClient creates a client on cc
func NewDiceTrayServiceClient(cc grpc.ClientConnInterface) DiceTrayServiceClient {
	return &diceTrayServiceClient{cc: cc}
}

func (c *diceTrayServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
