// Package grpcserver exposes the cell service over gRPC.
package grpcserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"galvani/internal/cell"
	"galvani/pkg/models"
)

type Server struct {
	Cells    *cell.Service
	validate *validator.Validate
}

func NewServer(cells *cell.Service) *Server {
	return &Server{Cells: cells, validate: validator.New(validator.WithRequiredStructEnabled())}
}

type listSpeciesRequest struct {
	Role string `json:"role" validate:"omitempty,oneof=reduced oxidized"`
}

type lookupSpeciesRequest struct {
	Formula string `json:"formula" validate:"required"`
}

type resolveCellRequest struct {
	First  string `json:"first" validate:"required"`
	Second string `json:"second" validate:"required"`
}

func (s *Server) ListSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listSpeciesRequest
	if err := s.decode(req, &in); err != nil {
		return nil, err
	}

	items := s.Cells.Species(models.Role(in.Role))
	return encode(map[string]any{
		"catalog": s.Cells.CatalogName(),
		"mode":    s.Cells.Engine.Resolver.Mode(),
		"total":   len(items),
		"items":   items,
	})
}

func (s *Server) LookupSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in lookupSpeciesRequest
	if err := s.decode(req, &in); err != nil {
		return nil, err
	}

	sp, err := s.Cells.Lookup(in.Formula)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(sp)
}

func (s *Server) ResolveCell(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in resolveCellRequest
	if err := s.decode(req, &in); err != nil {
		return nil, err
	}

	out, err := s.Cells.Simulate(ctx, "grpc", in.First, in.Second)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(out)
}

// decode copies a Struct request into dst and validates it.
func (s *Server) decode(req *structpb.Struct, dst any) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request required")
	}
	b, err := protojson.Marshal(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request: "+err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		return status.Error(codes.InvalidArgument, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

// encode round-trips v through JSON so the response uses the same field
// names as the HTTP API.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}
