package domain

import "time"

type ClientStatus string

const (
	ClientActive   ClientStatus = "ACTIVE"
	ClientBlocked  ClientStatus = "BLOCKED"
	ClientArchived ClientStatus = "ARCHIVED"
)

// Client is a renter, historically a combined first+last free-form name.
type Client struct {
	ID        int32        `json:"id"`
	Name      string       `json:"name"`
	Email     *string      `json:"email,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Company   *string      `json:"company,omitempty"`
	Status    ClientStatus `json:"status"`
	Notes     *string      `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt *time.Time   `json:"deletedAt,omitempty"`
}

type ClientFilter struct {
	Status         *ClientStatus
	Query          *string
	IncludeDeleted bool
}

type ClientRepository interface {
	Get(id int32, includeDeleted bool) (*Client, error)
	GetMany(ids []int32) ([]*Client, error)
	List(filter ClientFilter, page Page) ([]*Client, int64, error)
	Search(query string, page Page) ([]*Client, int64, error)
	Create(client *Client) (*Client, error)
	Update(client *Client) (*Client, error)
	SoftDelete(id int32) error
	HardDelete(id int32) error
	CountActiveBookings(clientID int32) (int64, error)
}
