//go:build integration
// +build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/collegeconnect/socialgraph/internal/sociald"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// TestIntegration_HTTPAndGRPCShareGraph drives one service through both
// surfaces over real listeners.
func TestIntegration_HTTPAndGRPCShareGraph(t *testing.T) {
	svc := loadSeededService(t)

	httpSrv := httptest.NewServer(sociald.NewHTTPServer(svc).Handler())
	defer httpSrv.Close()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	gs := grpc.NewServer()
	sociald.Register(gs, svc)
	go func() { _ = gs.Serve(lis) }()
	defer gs.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc client: %v", err)
	}
	defer conn.Close()
	client := sociald.NewGRPCClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// accept over HTTP
	resp, err := http.Post(httpSrv.URL+"/v1/users/student01/requests/student06/accept", "application/json", nil)
	if err != nil {
		t.Fatalf("accept request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from accept, got %d", resp.StatusCode)
	}

	// observe over gRPC
	friends, err := client.ListFriends(ctx, "student06")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 1 || friends[0] != "student01" {
		t.Fatalf("expected student06 to be friends with student01, got %v", friends)
	}
	pending, err := client.ListRequests(ctx, "student01")
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(pending) != 1 || pending[0] != "student04" {
		t.Fatalf("expected only student04 pending, got %v", pending)
	}

	// mutate over gRPC, read over HTTP
	if _, err := client.AddFriend(ctx, "student06", "student02"); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	resp, err = http.Get(httpSrv.URL + "/v1/users/student06/mutual/student01")
	if err != nil {
		t.Fatalf("mutual: %v", err)
	}
	defer resp.Body.Close()
	var mutual struct {
		Count  int             `json:"count"`
		Mutual []models.UserID `json:"mutual"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&mutual); err != nil {
		t.Fatalf("decode mutual: %v", err)
	}
	if mutual.Count != 1 || mutual.Mutual[0] != "student02" {
		t.Fatalf("expected student02 as the only mutual friend, got %+v", mutual)
	}

	metricsResp, err := http.Get(httpSrv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer metricsResp.Body.Close()
	body, err := io.ReadAll(metricsResp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(body), "socialgraph_friendships 7") {
		t.Fatalf("expected 7 friendships in metrics output")
	}
}
