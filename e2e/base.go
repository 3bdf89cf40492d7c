package e2e

import (
	"chat-relay/infrastructure/grpc/api"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips when no relay is running
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.GrpcAddr == "" {
		s.T().Skip("RELAY_GRPC_ADDR not set, no relay to test against")
	}
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseSuite) GrpcConn(t *testing.T, name string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	conn, err := grpc.NewClient(s.Config.GrpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, indent(req))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, indent(reply))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.GrpcAddr)
	return conn
}

// WithAuth provides an AuthService client within a contextual test step
func (s *BaseSuite) WithAuth(name string, fn func(ctx context.Context, client *api.AuthServiceClient)) {
	conn := s.GrpcConn(s.T(), name)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fn(ctx, api.NewAuthServiceClient(conn))
}

// WithAdmin logs in as the bootstrapped administrator and provides an AdminService client
func (s *BaseSuite) WithAdmin(name string, fn func(ctx context.Context, client *api.AdminServiceClient)) {
	token := s.Login(s.Config.AdminUsername, s.Config.AdminPassword)
	conn := s.GrpcConn(s.T(), name)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	fn(ctx, api.NewAdminServiceClient(conn))
}

func (s *BaseSuite) Login(username, password string) string {
	var token string
	s.WithAuth("Login "+username, func(ctx context.Context, client *api.AuthServiceClient) {
		resp, err := client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
		s.Require().NoError(err)
		token = resp.Token
	})
	return token
}

// Socket opens the realtime channel for the token owner
func (s *BaseSuite) Socket(token string) *websocket.Conn {
	u := url.URL{Scheme: "ws", Host: s.Config.HttpAddr, Path: "/ws", RawQuery: "token=" + url.QueryEscape(token)}
	ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	s.Require().NoError(err)
	return ws
}

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (s *BaseSuite) Emit(ws *websocket.Conn, name string, data any) {
	raw, err := json.Marshal(data)
	s.Require().NoError(err)
	s.Require().NoError(ws.WriteJSON(Frame{Event: name, Data: raw}))
}

// Await reads frames until one named name arrives
func (s *BaseSuite) Await(ws *websocket.Conn, name string) json.RawMessage {
	s.Require().NoError(ws.SetReadDeadline(time.Now().Add(5 * time.Second)))
	for {
		var frame Frame
		s.Require().NoError(ws.ReadJSON(&frame))
		if frame.Event == name {
			return frame.Data
		}
	}
}

func indent(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(raw)
}
