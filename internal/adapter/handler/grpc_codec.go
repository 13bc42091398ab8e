package handler

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype clients must send, as in
// application/grpc+json.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

const retailServiceName = "retail.v1.Retail"

// RetailServer is the server API for the retail.v1.Retail service.
type RetailServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	NearbyStores(context.Context, *NearbyStoresRequest) (*NearbyStoresResponse, error)
	PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*UpdateProductResponse, error)
	RecentOrders(context.Context, *RecentOrdersRequest) (*RecentOrdersResponse, error)
}

func unaryMethod[Req, Resp any](name string, call func(RetailServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RetailServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + retailServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RetailServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var retailServiceDesc = grpc.ServiceDesc{
	ServiceName: retailServiceName,
	HandlerType: (*RetailServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Login", RetailServer.Login),
		unaryMethod("Logout", RetailServer.Logout),
		unaryMethod("NearbyStores", RetailServer.NearbyStores),
		unaryMethod("PlaceOrder", RetailServer.PlaceOrder),
		unaryMethod("UpdateProduct", RetailServer.UpdateProduct),
		unaryMethod("RecentOrders", RetailServer.RecentOrders),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "retail/v1/retail.proto",
}

func RegisterRetailServer(s grpc.ServiceRegistrar, srv RetailServer) {
	s.RegisterService(&retailServiceDesc, srv)
}

// RetailClient calls the retail.v1.Retail service over a JSON-coded
// connection.
type RetailClient struct {
	cc grpc.ClientConnInterface
}

func NewRetailClient(cc grpc.ClientConnInterface) *RetailClient {
	return &RetailClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *RetailClient, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+retailServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RetailClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, "Login", in, opts...)
}

func (c *RetailClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c, "Logout", in, opts...)
}

func (c *RetailClient) NearbyStores(ctx context.Context, in *NearbyStoresRequest, opts ...grpc.CallOption) (*NearbyStoresResponse, error) {
	return invoke[NearbyStoresResponse](ctx, c, "NearbyStores", in, opts...)
}

func (c *RetailClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*PlaceOrderResponse, error) {
	return invoke[PlaceOrderResponse](ctx, c, "PlaceOrder", in, opts...)
}

func (c *RetailClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*UpdateProductResponse, error) {
	return invoke[UpdateProductResponse](ctx, c, "UpdateProduct", in, opts...)
}

func (c *RetailClient) RecentOrders(ctx context.Context, in *RecentOrdersRequest, opts ...grpc.CallOption) (*RecentOrdersResponse, error) {
	return invoke[RecentOrdersResponse](ctx, c, "RecentOrders", in, opts...)
}
