package http

import (
	"net/http"

	"reelstudio-backend/internal/security"
	"reelstudio-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs.
type Services struct {
	Proposals     service.ProposalService
	Transactions  service.TransactionService
	Projects      service.ProjectService
	Equipment     service.EquipmentService
	Clients       service.ClientService
	Notifications service.NotificationService
}

// NewRouter wires the back-office API under /api behind JWT auth and the
// client-facing proposal routes under /public keyed by share token.
func NewRouter(svcs Services, tokens security.TokenManager) http.Handler {
	r := mux.NewRouter()

	public := r.PathPrefix("/public").Subrouter()
	pub := NewPublicProposalHandler(svcs.Proposals)
	public.HandleFunc("/proposals/{token}", pub.Get).Methods(http.MethodGet)
	public.HandleFunc("/proposals/{token}/optionals/{optionalID}/toggle", pub.ToggleOptional).Methods(http.MethodPost)
	public.HandleFunc("/proposals/{token}/accept", pub.Accept).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	ph := NewProposalHandler(svcs.Proposals)
	api.HandleFunc("/proposals", ph.Create).Methods(http.MethodPost)
	api.HandleFunc("/proposals", ph.List).Methods(http.MethodGet)
	api.HandleFunc("/proposals/{id}", ph.Get).Methods(http.MethodGet)
	api.HandleFunc("/proposals/{id}", ph.Update).Methods(http.MethodPut)
	api.HandleFunc("/proposals/{id}/send", ph.Send).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/reject", ph.Reject).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/accept", ph.Accept).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/items", ph.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/items/{itemID}", ph.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/proposals/{id}/items/{itemID}", ph.RemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/proposals/{id}/optionals", ph.AddOptional).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/optionals/{optionalID}", ph.UpdateOptional).Methods(http.MethodPut)
	api.HandleFunc("/proposals/{id}/optionals/{optionalID}", ph.RemoveOptional).Methods(http.MethodDelete)
	api.HandleFunc("/proposals/{id}/schedule", ph.AddScheduleEntry).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}/schedule/{entryID}", ph.RemoveScheduleEntry).Methods(http.MethodDelete)

	th := NewTransactionHandler(svcs.Transactions)
	api.HandleFunc("/transactions", th.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions", th.List).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}", th.Get).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}", th.Update).Methods(http.MethodPut)
	api.HandleFunc("/transactions/{id}/pay", th.MarkAsPaid).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}/schedule", th.Schedule).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}/cancel", th.Cancel).Methods(http.MethodPost)

	prh := NewProjectHandler(svcs.Projects)
	api.HandleFunc("/projects", prh.List).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", prh.Get).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/costing", prh.JobCosting).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/members", prh.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/members", prh.ListMembers).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/members/{memberID}/status", prh.UpdateMemberStatus).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}/members/{memberID}/fee", prh.SetMemberFee).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}/expenses", prh.AddExpense).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/expenses", prh.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/expenses/{expenseID}", prh.UpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}/calendar", prh.ListCalendarEvents).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/financial-summary", prh.SetFinancialSummary).Methods(http.MethodPut)

	eh := NewEquipmentHandler(svcs.Equipment)
	api.HandleFunc("/equipment", eh.Create).Methods(http.MethodPost)
	api.HandleFunc("/equipment", eh.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", eh.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/roi", eh.ROI).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/bookings", eh.RecordBooking).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/bookings", eh.ListBookings).Methods(http.MethodGet)

	ch := NewClientHandler(svcs.Clients)
	api.HandleFunc("/clients", ch.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients", ch.List).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", ch.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", ch.Update).Methods(http.MethodPut)

	nh := NewNotificationHandler(svcs.Notifications)
	api.HandleFunc("/notifications", nh.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", nh.MarkAsRead).Methods(http.MethodPost)

	return r
}
