package testutils

import (
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// DefaultTestSuite is embedded by handler suites that route requests through
// a bare echo instance.
type DefaultTestSuite struct {
	suite.Suite
	Server *echo.Echo
}
