// Package rpc provides Unix socket IPC between the beacon listener and the history CLI.
package rpc

import (
	"errors"
	"fmt"
	"net"
	netrpc "net/rpc"
	"os"

	"github.com/rs/zerolog"

	"rtkit/internal/store"
)

// Service is the RPC service exposed by the listener.
type Service struct {
	store *store.Store
	log   zerolog.Logger
}

// ListBeaconsArgs is the request for ListBeacons.
type ListBeaconsArgs struct{}

// ListBeaconsReply is the response for ListBeacons.
type ListBeaconsReply struct {
	Beacons []store.BeaconRecord
}

// ListBeacons returns every recorded beacon source.
func (s *Service) ListBeacons(args *ListBeaconsArgs, reply *ListBeaconsReply) error {
	records, err := s.store.GetAll()
	if err != nil {
		return fmt.Errorf("fetching beacons: %w", err)
	}
	reply.Beacons = records
	return nil
}

// StartServer starts the Unix socket RPC server and returns its listener so
// the caller can close it on shutdown.
func StartServer(socketPath string, db *store.Store, log zerolog.Logger) (net.Listener, error) {
	service := &Service{store: db, log: log}

	server := netrpc.NewServer()
	if err := server.Register(service); err != nil {
		return nil, fmt.Errorf("registering RPC service: %w", err)
	}

	// Remove existing socket file if present
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", socketPath, err)
	}

	if err := os.Chmod(socketPath, 0660); err != nil {
		log.Warn().Err(err).Msg("Failed to set socket permissions")
	}

	log.Info().Str("socket", socketPath).Msg("RPC server started")

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				log.Error().Err(err).Msg("RPC accept error")
				continue
			}
			go server.ServeConn(conn)
		}
	}()

	return listener, nil
}

// Client is a client for the rtkit RPC service.
type Client struct {
	client *netrpc.Client
}

// NewClient dials the Unix socket and returns an RPC client.
func NewClient(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to RPC socket %s: %w", socketPath, err)
	}
	return &Client{client: netrpc.NewClient(conn)}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// ListBeacons fetches all recorded beacons from the listener.
func (c *Client) ListBeacons() ([]store.BeaconRecord, error) {
	args := &ListBeaconsArgs{}
	reply := &ListBeaconsReply{}
	if err := c.client.Call("Service.ListBeacons", args, reply); err != nil {
		return nil, err
	}
	return reply.Beacons, nil
}
