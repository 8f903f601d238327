package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
)

// Request bodies.

type partyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type createParcelRequest struct {
	Receiver      partyRequest `json:"receiver"`
	ParcelType    string       `json:"parcelType"`
	WeightKg      float64      `json:"weightKg"`
	Dimensions    string       `json:"dimensions"`
	Description   string       `json:"description"`
	DeclaredValue *float64     `json:"declaredValue"`

	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate"`
	Instructions          string     `json:"instructions"`
	Urgent                bool       `json:"urgent"`
}

type updateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

type noteRequest struct {
	Note string `json:"note"`
}

type locatedNoteRequest struct {
	Location string `json:"location"`
	Note     string `json:"note"`
}

type gateRequest struct {
	Set  bool   `json:"set"`
	Note string `json:"note"`
}

type assignPersonnelRequest struct {
	Personnel string `json:"personnel"`
}

// Response bodies. Query responses are returned as-is; the command side maps
// the created aggregate through createdParcelResponse.

type createdParcelResponse struct {
	ID           string  `json:"id"`
	TrackingCode string  `json:"trackingCode"`
	Status       string  `json:"status"`
	FeeTotal     float64 `json:"feeTotal"`
}

func createdFrom(p *parcel.Parcel) createdParcelResponse {
	return createdParcelResponse{
		ID:           p.ID().String(),
		TrackingCode: p.TrackingCode().String(),
		Status:       p.Status().String(),
		FeeTotal:     p.Fee().Total(),
	}
}

type listResponse struct {
	Items    []queries.ParcelSummary `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}
