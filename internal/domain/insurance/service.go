package insurance

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
	"github.com/clinova/clinova/pkg/validate"
)

type Service struct {
	plans Repository
}

func NewService(plans Repository) *Service {
	return &Service{plans: plans}
}

func (s *Service) List(ctx context.Context, providerName string, pg pagination.Params) ([]*Insurance, int, error) {
	return s.plans.List(ctx, strings.TrimSpace(providerName), pg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	return s.plans.GetByID(ctx, id)
}

// Input is the write payload for an insurance plan.
type Input struct {
	ProviderName string `json:"providerName"`
	PolicyNumber string `json:"policyNumber"`
	GroupNumber  string `json:"groupNumber"`
	Type         string `json:"type"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (in *Input) apply(ins *Insurance) error {
	if strings.TrimSpace(in.ProviderName) == "" {
		return validate.Errorf("providerName is required")
	}
	ins.ProviderName = strings.TrimSpace(in.ProviderName)
	ins.PolicyNumber = nilIfBlank(in.PolicyNumber)
	ins.GroupNumber = nilIfBlank(in.GroupNumber)
	ins.Type = nilIfBlank(in.Type)
	ins.Phone = nilIfBlank(in.Phone)
	ins.Address = nilIfBlank(in.Address)
	return nil
}

func (s *Service) Create(ctx context.Context, in *Input) (*Insurance, error) {
	var ins Insurance
	if err := in.apply(&ins); err != nil {
		return nil, err
	}
	if err := s.plans.Create(ctx, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Insurance, error) {
	ins, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(ins); err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, ins); err != nil {
		return nil, err
	}
	return ins, nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
