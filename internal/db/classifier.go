package db

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClass tells the runner whether an execution error can be recorded
// against a statement or must end the run.
type ErrorClass int

const (
	// ClassStatement is an error the server reported for the statement itself
	// (syntax, missing relation, constraint violation). The session is intact.
	ClassStatement ErrorClass = iota

	// ClassConnection means the session is gone or going away.
	ClassConnection

	// ClassUnknown covers everything else, including cancellation.
	ClassUnknown
)

// String returns a human-readable name of the class.
func (c ErrorClass) String() string {
	switch c {
	case ClassStatement:
		return "statement"
	case ClassConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// PostgreSQL error classes that terminate the session.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnectionException  = "08"
	pgClassOperatorIntervention = "57"

	// 57014 is raised for a cancelled statement; the session survives it.
	pgCodeQueryCanceled = "57014"
)

// Classify determines the ErrorClass of err. A nil error is ClassUnknown.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ClassUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgError(pgErr)
	}

	if isNetworkError(err) || isConnectionError(err) {
		return ClassConnection
	}

	return ClassUnknown
}

// IsStatementError reports whether err is a server-reported statement error
// that leaves the connection usable.
func IsStatementError(err error) bool {
	return Classify(err) == ClassStatement
}

func classifyPgError(pgErr *pgconn.PgError) ErrorClass {
	code := pgErr.Code
	if code == pgCodeQueryCanceled {
		return ClassStatement
	}
	if strings.HasPrefix(code, pgClassConnectionException) || strings.HasPrefix(code, pgClassOperatorIntervention) {
		return ClassConnection
	}
	return ClassStatement
}

// isNetworkError checks for network-level errors.
func isNetworkError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}

// isConnectionError checks for connection-related errors from pgconn.
func isConnectionError(err error) bool {
	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	patterns := []string{
		"conn closed",
		"connection reset",
		"broken pipe",
		"server closed the connection",
		"unexpected eof",
	}

	for _, pattern := range patterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
