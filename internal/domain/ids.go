package domain

import (
	"strings"

	"github.com/google/uuid"
)

const shortIDLength = 12

func newShortID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + hex[:shortIDLength]
}

func NewSlotID() string {
	return newShortID("slot_")
}

func NewNotificationID() string {
	return newShortID("notif_")
}

func NewIntegrationID() string {
	return newShortID("int_")
}
