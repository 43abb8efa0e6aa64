package main

import (
	"context"
	"flag"
	"log"
	"time"

	pb "tipjar/api/pb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:50051", "gRPC 服务地址")
	user := flag.String("user", "0x0000000000000000000000000000000000000000", "查询的地址")
	flag.Parse()

	// Set up a connection to the server.
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Test 1: Health
	hc, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: pb.TipJar_ServiceName})
	if err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	log.Printf("Health: %s", hc.GetStatus())

	// Test 2: TipsOf
	r, err := pb.NewTipJarClient(conn).TipsOf(ctx, wrapperspb.String(*user))
	if err != nil {
		log.Fatalf("could not get tips: %v", err)
	}
	log.Printf("Tips of %s: %s", *user, r.GetValue())
}
