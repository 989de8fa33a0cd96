package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/usecase/service_interfaces"
)

type CustomerController struct {
	customerService service_interfaces.CustomerService
	accountService  service_interfaces.AccountService
}

func NewCustomerController(
	customerService service_interfaces.CustomerService,
	accountService service_interfaces.AccountService,
) *CustomerController {
	return &CustomerController{
		customerService: customerService,
		accountService:  accountService,
	}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware, "POST /customers", c.createCustomer)
	register(mux, authMiddleware, "GET /customers", c.listCustomers)
	register(mux, authMiddleware, "GET /customers/{id}", c.getCustomer)
	register(mux, authMiddleware, "GET /customers/{id}/accounts", c.listAccounts)
}

func (c *CustomerController) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.customerService.CreateCustomer(ctx, req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *CustomerController) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("validation failed", "id must be a positive integer"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.customerService.GetCustomer(ctx, id)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.customerService.ListCustomers(ctx)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) listAccounts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("validation failed", "id must be a positive integer"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.accountService.ListAccountsByCustomer(ctx, id)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
