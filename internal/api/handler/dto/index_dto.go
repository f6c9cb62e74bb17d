package dto

// APIIndexResponse is the static route listing served at the root.
type APIIndexResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

func NewAPIIndexResponse() APIIndexResponse {
	return APIIndexResponse{
		Message: "Credit Approval System API",
		Endpoints: []string{
			"register",
			"check-eligibility",
			"create-loan",
			"view-loan/{loan_id}",
			"view-loans/{customer_id}",
		},
	}
}
