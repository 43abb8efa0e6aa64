package grpc

import (
	"context"
	"errors"
	"math/big"
	"net"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "tipjar/api/pb"
)

type stubReader struct {
	tips map[common.Address]*big.Int
	err  error
}

func (s *stubReader) TipsOf(ctx context.Context, user common.Address) (*big.Int, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.tips[user]; ok {
		return v, nil
	}
	return big.NewInt(0), nil
}

func dial(t *testing.T, reader TipsReader) pb.TipJarClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterTipJarServer(srv, NewTipJarHandler(reader))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return pb.NewTipJarClient(conn)
}

func TestTipsOf(t *testing.T) {
	user := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	client := dial(t, &stubReader{tips: map[common.Address]*big.Int{user: big.NewInt(42)}})

	resp, err := client.TipsOf(context.Background(), wrapperspb.String(user.Hex()))
	require.NoError(t, err)
	assert.Equal(t, "42", resp.GetValue())

	// 地址大小写不影响查询
	resp, err = client.TipsOf(context.Background(), wrapperspb.String("0x9858effd232b4033e47d90003d41ec34ecaeda94"))
	require.NoError(t, err)
	assert.Equal(t, "42", resp.GetValue())
}

func TestTipsOfInvalidAddress(t *testing.T) {
	client := dial(t, &stubReader{})

	for _, in := range []string{"", "0x1234", "not-an-address"} {
		_, err := client.TipsOf(context.Background(), wrapperspb.String(in))
		assert.Equal(t, codes.InvalidArgument, status.Code(err), in)
	}
}

func TestTipsOfProviderFailure(t *testing.T) {
	client := dial(t, &stubReader{err: errors.New("rpc unavailable")})

	_, err := client.TipsOf(context.Background(), wrapperspb.String("0x9858EfFD232B4033E47d90003D41EC34EcaEda94"))
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "rpc unavailable")
}
