package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSavedService(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()
	serviceID := uuid.New()

	saved, err := NewSavedService(userID, serviceID)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if saved.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if saved.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, saved.UserID)
	}

	if saved.ServiceID != serviceID {
		t.Errorf("Expected service ID %s, got %s", serviceID, saved.ServiceID)
	}

	if saved.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid user ID
	_, err = NewSavedService(uuid.Nil, serviceID)
	if err != ErrSavedServiceUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSavedServiceUserIDEmpty, err)
	}

	// Test invalid service ID
	_, err = NewSavedService(userID, uuid.Nil)
	if err != ErrSavedServiceServiceIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSavedServiceServiceIDEmpty, err)
	}
}
