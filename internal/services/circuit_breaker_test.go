package services

import (
	"testing"
	"time"

	"asset-dashboard-api/internal/models"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite
	clock   *fakeClock
	breaker *CircuitBreaker
}

func TestCircuitBreakerTestSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerTestSuite))
}

func (s *CircuitBreakerTestSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s.breaker = newCircuitBreakerWithClock(CircuitBreakerConfig{
		MaxFailures:  3,
		ResetTimeout: 30 * time.Second,
	}, s.clock.Now)
}

func (s *CircuitBreakerTestSuite) TestOpensAfterMaxFailures() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
	s.Equal(StateOpen, s.breaker.GetState())
}

func (s *CircuitBreakerTestSuite) TestSuccessResetsFailureCount() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()

	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
	s.Equal(StateClosed, s.breaker.GetState())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenAfterResetTimeout() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}

	s.clock.Advance(30 * time.Second)

	s.False(s.breaker.IsOpen())
	s.Equal(StateHalfOpen, s.breaker.GetState())

	s.breaker.RecordSuccess()
	s.Equal(StateClosed, s.breaker.GetState())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenFailureReopens() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	s.clock.Advance(time.Minute)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()

	s.True(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestStateChangesAreReported() {
	var transitions []string
	breaker := newCircuitBreakerWithClock(CircuitBreakerConfig{
		MaxFailures:  1,
		ResetTimeout: time.Second,

		OnStateChange: func(from, to models.CircuitBreakerState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	}, s.clock.Now)

	breaker.RecordFailure()
	s.clock.Advance(time.Second)
	breaker.IsOpen()
	breaker.RecordSuccess()
	breaker.RecordSuccess()

	s.Equal([]string{"closed->open", "open->half_open", "half_open->closed"}, transitions)
}
