// Package client provides test commands for the dice tray gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/KirkDiggler/rpg-dice-tray/internal/handlers/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	playerID string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the dice tray",
	Long:  `Client commands allow you to drive a dice tray by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&playerID, "player", "cli-player", "Player whose tray is used")

	ClientCmd.AddCommand(listSetsCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(previewCmd)

	// Commands on the current roll
	ClientCmd.AddCommand(finishCmd)
	ClientCmd.AddCommand(rerollCmd)
	ClientCmd.AddCommand(clearCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(closeCmd)

	ClientCmd.AddCommand(historyCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createTrayClient creates a dice tray service client
func createTrayClient() (v1alpha1.DiceTrayServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewDiceTrayServiceClient(conn), cleanup, nil
}

// call sends req to method and prints the response
func call(method string, req any) error {
	client, cleanup, err := createTrayClient()
	if err != nil {
		return err
	}
	defer cleanup()

	in, err := v1alpha1.EncodeStruct(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, in)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
