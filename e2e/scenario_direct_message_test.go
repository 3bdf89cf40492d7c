package e2e

import (
	"chat-relay/infrastructure/grpc/api"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testDirectMessageSuite struct {
	BaseSuite
}

func TestDirectMessageSuite(t *testing.T) {
	suite.Run(t, &testDirectMessageSuite{})
}

func (s *testDirectMessageSuite) TestRegisterApproveAndChat() {
	suffix := time.Now().UnixNano() % 1_000_000
	bob := fmt.Sprintf("bob%d", suffix)
	carol := fmt.Sprintf("carol%d", suffix)
	password := "secret-password"

	s.Run("Step 1: Register two participants", func() {
		s.WithAuth("Register", func(ctx context.Context, client *api.AuthServiceClient) {
			for _, username := range []string{bob, carol} {
				resp, err := client.Register(ctx, &api.RegisterRequest{
					Username: username, Email: username + "@example.com", Password: password,
				})
				s.Require().NoError(err)
				s.Require().Equal("pending", resp.Status)
			}
		})
	})

	s.Run("Step 2: Administrator approves them", func() {
		s.WithAdmin("Approve", func(ctx context.Context, client *api.AdminServiceClient) {
			for _, username := range []string{bob, carol} {
				resp, err := client.ApproveUser(ctx, username)
				s.Require().NoError(err)
				s.Require().Equal("approved", resp.User.Status)
			}
		})
	})

	s.Run("Step 3: Direct message is delivered live", func() {
		bobSocket := s.Socket(s.Login(bob, password))
		defer bobSocket.Close()
		carolSocket := s.Socket(s.Login(carol, password))
		defer carolSocket.Close()

		s.Emit(bobSocket, "join", bob)
		s.Await(bobSocket, "history")
		s.Emit(carolSocket, "join", carol)
		s.Await(carolSocket, "history")

		s.Emit(bobSocket, "send", map[string]string{"from": bob, "to": carol, "text": "hello carol"})

		var message struct {
			From string `json:"from"`
			Text string `json:"text"`
		}
		s.Require().NoError(json.Unmarshal(s.Await(carolSocket, "message"), &message))
		s.Require().Equal(bob, message.From)
		s.Require().Equal("hello carol", message.Text)
	})

	s.Run("Step 4: Cleanup", func() {
		s.WithAdmin("Delete", func(ctx context.Context, client *api.AdminServiceClient) {
			s.Require().NoError(client.DeleteUser(ctx, bob))
			s.Require().NoError(client.DeleteUser(ctx, carol))
		})
	})
}
