package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
	"github.com/Brownie44l1/webserver/internal/server"
)

// tcplistener prints every decoded request line it receives. It is a
// debugging aid and serves connections one at a time.
func main() {
	var addr string

	cmd := &cobra.Command{
		Use:   "tcplistener",
		Short: "Print decoded request lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listen(addr)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&addr, "addr", ":42069", "address to listen on")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	fmt.Printf("Listening on %s...\n", listener.Addr())

	buffers := server.NewBufferPool(server.DefaultReadBufferSize)
	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}
		handleConnection(conn, buffers)
	}
}

func handleConnection(conn net.Conn, buffers *server.BufferPool) {
	defer conn.Close()

	buf := buffers.Get()
	defer buffers.Put(buf)

	n, err := conn.Read(buf)
	if err != nil {
		fmt.Println("Read error:", err)
		return
	}

	req, err := request.Decode(buf[:n])
	if err != nil {
		fmt.Println("Decode error:", err)
		if err := response.BadRequest().Send(conn); err != nil {
			fmt.Println("Write error:", err)
		}
		return
	}

	fmt.Println("Request line:")
	fmt.Printf("- Method: %s\n", req.Method())
	fmt.Printf("- Path: %s\n", req.Path())
	if qs := req.QueryString(); qs != nil {
		fmt.Println("Query:")
		for _, key := range qs.Keys() {
			v, _ := qs.Get(key)
			fmt.Printf("- %s: %v\n", key, v.Values())
		}
	}

	if err := response.Text("Hello from your HTTP server!\n").Send(conn); err != nil {
		fmt.Println("Write error:", err)
	}
}
