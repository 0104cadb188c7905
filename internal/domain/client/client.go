package client

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// Client is a directory entry for a guest. Read-only from the booking
// engine's perspective.
type Client struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     string
	phone     string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a client directory entry with validated fields.
func New(firstName, lastName, email, phone string) (*Client, error) {
	if firstName == "" || lastName == "" {
		return nil, domain.NewValidationError("first and last name are required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email address is required")
	}

	now := time.Now().UTC()
	return &Client{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Client from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	firstName, lastName, email, phone string,
	version int64,
	createdAt, updatedAt time.Time,
) *Client {
	return &Client{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Client) ID() uuid.UUID        { return c.id }
func (c *Client) FirstName() string    { return c.firstName }
func (c *Client) LastName() string     { return c.lastName }
func (c *Client) Email() string        { return c.email }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Version() int64       { return c.version }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

// Update applies partial changes to the directory entry.
func (c *Client) Update(firstName, lastName, email, phone string) error {
	if firstName != "" {
		c.firstName = firstName
	}
	if lastName != "" {
		c.lastName = lastName
	}
	if email != "" {
		if !strings.Contains(email, "@") {
			return domain.NewValidationError("a valid email address is required")
		}
		c.email = email
	}
	if phone != "" {
		c.phone = phone
	}
	c.version++
	c.updatedAt = time.Now().UTC()
	return nil
}
