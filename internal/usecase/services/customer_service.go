package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service create customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service create customer validation failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer := domain.Customer{
		Name:  strings.TrimSpace(req.Name),
		Email: optionalString(req.Email),
		Phone: optionalString(req.Phone),
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		logger.Error("customer service create customer repository failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to create customer", "Unable to create customer right now"), err
	}

	response := mapCustomerToResponse(created)

	logger.Info("customer service create customer success", logger.Fields{
		"customerId": response.ID,
	})

	return commons.SuccessResponse("customer created successfully", response), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service get customer request", logger.Fields{
		"customerId": customerID,
	})

	if customerID <= 0 {
		err := fmt.Errorf("customerId is required")
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		logger.Error("customer service get customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to get customer", "Unable to fetch customer right now"), err
	}

	return commons.SuccessResponse("customer fetched successfully", mapCustomerToResponse(customer)), nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		logger.Error("customer service list customers failed", err, nil)
		return commons.ErrorResponse[[]models.CustomerResponse]("failed to list customers", "Unable to fetch customers right now"), err
	}

	responses := make([]models.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, mapCustomerToResponse(customer))
	}

	return commons.SuccessResponse("customers fetched successfully", responses), nil
}

func mapCustomerToResponse(customer domain.Customer) models.CustomerResponse {
	response := models.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		CreatedAt: customer.CreatedAt.Format(time.RFC3339),
	}
	if customer.Email != nil {
		response.Email = *customer.Email
	}
	if customer.Phone != nil {
		response.Phone = *customer.Phone
	}
	return response
}

func optionalString(value string) *string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return &trimmed
	}
	return nil
}
