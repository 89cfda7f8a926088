//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"tablekeeper/internal/domain/event"
	reqdto "tablekeeper/internal/handler/dto/request"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/pkg/jwt"
	"tablekeeper/internal/pkg/ptr"
	"tablekeeper/tests/common/authtest"
	"tablekeeper/tests/common/dbtest"
	"tablekeeper/tests/common/httptest"
	"tablekeeper/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	cancelURL       = "/api/reservations/cancel"
	historyURL      = "/api/reservations/%s/history"
	tablesURL       = "/api/tables"
	journalWait     = 5 * time.Second
)

type ReservationSuite struct {
	e2e.SharedSuite
	staffToken string
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.staffToken = authtest.NewJWTHelper(s.Config.JWT.Secret).GenerateToken(s.T(), "staff-e2e", jwt.RoleStaff)
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// The allocation engine keeps reservations in memory for the app's lifetime,
// so every test books on its own day.
func bookingDate(daysAhead int) string {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).AddDate(0, 0, daysAhead).Format(time.DateOnly)
}

func createRequest(date, name string, party int) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ClientName:  name,
		ClientPhone: "+34 600 111 222",
		PartySize:   party,
		Date:        date,
		Time:        "20:00",
	}
}

func (s *ReservationSuite) TestCreateReservation_JournalsConfirmation() {
	t := s.T()
	date := bookingDate(3)

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(date, "Lucía Gómez", 2), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.CreateReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.True(t, created.Success)
	require.NotNil(t, created.Reservation)
	require.NotNil(t, created.Table)
	require.Equal(t, "T1", created.Table.ID, "smallest fitting table wins")

	id := created.Reservation.ID.String()
	require.Eventually(t, func() bool {
		return len(dbtest.JournalKinds(t, s.DB, id)) == 1
	}, journalWait, 50*time.Millisecond)
	require.Equal(t, 1, dbtest.TableUseCount(t, s.DB, "T1"))

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, id), nil, s.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var history []resdto.HistoryEntryResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))
	kinds := make([]string, 0, len(history))
	for _, h := range history {
		kinds = append(kinds, h.Kind)
	}
	if diff := cmp.Diff([]string{string(event.KindReservationConfirmed)}, kinds); diff != "" {
		t.Errorf("history kinds mismatch (-want +got):\n%s", diff)
	}
}

func (s *ReservationSuite) TestCreateReservation_UsageSteersLoadBalance() {
	t := s.T()
	date := bookingDate(4)

	// T2 and T3 both seat four; heavy history on T2 pushes the engine to T3.
	// Usage is loaded at startup, so the history is seeded before booting.
	dbtest.SeedTableUsage(t, s.DB, "T2", 40)
	dbtest.SeedTableUsage(t, s.DB, "T3", 0)
	router := s.StartApp(t)

	w := httptest.PerformRequest(t, router, http.MethodPost, reservationsURL, createRequest(date, "Pablo Ruiz", 4), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.CreateReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.Equal(t, "T3", created.Table.ID)

	require.Eventually(t, func() bool {
		return dbtest.TableUseCount(t, s.DB, "T3") == 1
	}, journalWait, 50*time.Millisecond)
	require.Equal(t, 40, dbtest.TableUseCount(t, s.DB, "T2"))
}

func (s *ReservationSuite) TestCancelReservation_TwoStep() {
	t := s.T()
	date := bookingDate(5)

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(date, "Marta Sanz", 2), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created resdto.CreateReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	id := created.Reservation.ID.String()

	cancel := reqdto.CancelReservationRequest{Phone: "600111222", Name: "marta sanz", Date: ptr.Of(date)}

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, cancel, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var preview resdto.CancelReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &preview))
	require.Equal(t, "ConfirmationRequired", preview.Outcome)
	require.False(t, preview.TableReleased)

	cancel.Confirm = true
	w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, cancel, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var done resdto.CancelReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &done))
	require.Equal(t, "Cancelled", done.Outcome)
	require.Equal(t, "cancelled", done.Reservation.Status)

	want := []string{string(event.KindReservationConfirmed), string(event.KindReservationCancelled)}
	require.Eventually(t, func() bool {
		return cmp.Equal(want, dbtest.JournalKinds(t, s.DB, id))
	}, journalWait, 50*time.Millisecond)
}

func (s *ReservationSuite) TestTableBoard_RequiresStaff() {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, tablesURL, nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, tablesURL, nil, s.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var board resdto.TableBoardResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &board))
	require.Len(t, board.Tables, len(s.Config.Restaurant.Tables))
}
