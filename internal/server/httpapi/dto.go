package httpapi

import (
	"time"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// targetDateLayout is the wire format for reminder target dates.
const targetDateLayout = "2006-01-02"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *models.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, Email: a.Email, Mobile: a.Mobile, CreatedAt: a.CreatedAt}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

type createHeaderRequest struct {
	Name string `json:"name"`
}

type headerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toHeaderResponse(h *models.Header) headerResponse {
	return headerResponse{ID: h.ID, Name: h.Name, CreatedAt: h.CreatedAt}
}

type createItemRequest struct {
	HeaderID   int64  `json:"header_id"`
	Title      string `json:"title"`
	ShortDesc  string `json:"short_desc"`
	LongDesc   string `json:"long_desc"`
	Highlights string `json:"highlights"`
}

type itemResponse struct {
	ID         int64     `json:"id"`
	HeaderID   int64     `json:"header_id"`
	HeaderName string    `json:"header_name"`
	Title      string    `json:"title"`
	ShortDesc  string    `json:"short_desc"`
	LongDesc   string    `json:"long_desc"`
	Highlights string    `json:"highlights"`
	CreatedAt  time.Time `json:"created_at"`
}

func toItemResponse(i *models.Item) itemResponse {
	return itemResponse{
		ID:         i.ID,
		HeaderID:   i.HeaderID,
		HeaderName: i.HeaderName,
		Title:      i.Title,
		ShortDesc:  i.ShortDesc,
		LongDesc:   i.LongDesc,
		Highlights: i.Highlights,
		CreatedAt:  i.CreatedAt,
	}
}

type headerNodeResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Items []itemResponse `json:"items"`
}

type overviewResponse struct {
	Headers         []headerNodeResponse `json:"headers"`
	RecentDocuments []documentResponse   `json:"recent_documents"`
}

func toOverviewResponse(o *services.AccountOverview) overviewResponse {
	out := overviewResponse{
		Headers:         make([]headerNodeResponse, 0, len(o.Headers)),
		RecentDocuments: make([]documentResponse, 0, len(o.RecentDocuments)),
	}
	for _, node := range o.Headers {
		hn := headerNodeResponse{
			ID:    node.Header.ID,
			Name:  node.Header.Name,
			Items: make([]itemResponse, 0, len(node.Items)),
		}
		for _, it := range node.Items {
			hn.Items = append(hn.Items, toItemResponse(it))
		}
		out.Headers = append(out.Headers, hn)
	}
	for _, d := range o.RecentDocuments {
		out.RecentDocuments = append(out.RecentDocuments, toDocumentResponse(d))
	}
	return out
}

type upsertReminderRequest struct {
	ItemID     int64  `json:"item_id,omitempty"`
	Name       string `json:"name"`
	TargetDate string `json:"target_date"`
	Before     int    `json:"before"`
}

type reminderResponse struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name"`
	TargetDate string    `json:"target_date"`
	Before     int       `json:"before"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReminderResponse(r *models.Reminder) reminderResponse {
	return reminderResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		Name:       r.Name,
		TargetDate: r.TargetDate.Format(targetDateLayout),
		Before:     int(r.Before),
		CreatedAt:  r.CreatedAt,
	}
}

type documentResponse struct {
	ID              int64     `json:"id"`
	ItemID          int64     `json:"item_id"`
	Name            string    `json:"name"`
	RenewalRequired bool      `json:"renewal_required"`
	CreatedAt       time.Time `json:"created_at"`
}

// Storage keys stay internal: clients retrieve content only through signed
// download links.
func toDocumentResponse(d *models.Document) documentResponse {
	return documentResponse{
		ID:              d.ID,
		ItemID:          d.ItemID,
		Name:            d.Name,
		RenewalRequired: d.RenewalRequired,
		CreatedAt:       d.CreatedAt,
	}
}

type downloadLinkResponse struct {
	URL string `json:"url"`
}
