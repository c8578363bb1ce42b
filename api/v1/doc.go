// Package v1 is the job.v1 gRPC API defined in job.proto.
package v1

//go:generate protoc -I ../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative api/v1/job.proto
