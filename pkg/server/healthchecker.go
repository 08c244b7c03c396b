package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) bool

func (f HealthCheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// CompositeHealthChecker is healthy only when every registered checker is.
type CompositeHealthChecker struct {
	checkers []HealthChecker
}

func NewCompositeHealthChecker(checkers ...HealthChecker) *CompositeHealthChecker {
	c := &CompositeHealthChecker{}
	for _, hc := range checkers {
		c.Add(hc)
	}
	return c
}

// Add registers hc; nil checkers are ignored.
func (c *CompositeHealthChecker) Add(hc HealthChecker) {
	if hc != nil {
		c.checkers = append(c.checkers, hc)
	}
}

func (c *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	for _, hc := range c.checkers {
		if !hc.Healthy(ctx) {
			return false
		}
	}
	return true
}
