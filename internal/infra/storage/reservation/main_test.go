package reservation_test

import (
	"os"
	"testing"

	"github.com/m04kA/SMC-TourBookingService/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.MigrateForTestMain()
	os.Exit(m.Run())
}
