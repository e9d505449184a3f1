package database

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// every test closes the pools it opens
	goleak.VerifyTestMain(m)
}
