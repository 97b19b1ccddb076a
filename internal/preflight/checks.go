package preflight

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const (
	relayTimeout = 5 * time.Second
	ntfyTimeout  = 5 * time.Second
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCredentials reports whether both sender credentials are present. The
// password is never echoed.
func CheckCredentials(address, password string) Result {
	const name = "Mail credentials"

	address = strings.TrimSpace(address)
	switch {
	case address == "" && password == "":
		return Result{Name: name, Detail: "EMAIL_ADDRESS and EMAIL_PASSWORD not set"}
	case address == "":
		return Result{Name: name, Detail: "EMAIL_ADDRESS not set"}
	case password == "":
		return Result{Name: name, Detail: "EMAIL_PASSWORD not set"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("sender %s", address)}
}

// CheckRelay dials the SMTP relay and waits for its 220 greeting. It does not
// authenticate.
func CheckRelay(ctx context.Context, host string, port int) Result {
	const name = "SMTP relay"

	host = strings.TrimSpace(host)
	if host == "" || port <= 0 {
		return Result{Name: name, Detail: "missing host or port"}
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	checkCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(checkCtx, "tcp", addr)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", addr, summarizeNetError(err))}
	}
	defer conn.Close()
	if deadline, ok := checkCtx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	greeting, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no greeting: %s)", addr, summarizeNetError(err))}
	}
	if !strings.HasPrefix(greeting, "220") {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: unexpected greeting %q)", addr, strings.TrimSpace(greeting))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", addr)}
}

// CheckNtfy queries the health endpoint of the server hosting topicURL.
func CheckNtfy(ctx context.Context, topicURL string) Result {
	const name = "ntfy"

	parsed, err := url.Parse(strings.TrimSpace(topicURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Result{Name: name, Detail: "invalid topic url"}
	}
	healthURL := parsed.Scheme + "://" + parsed.Host + "/v1/health"

	checkCtx, cancel := context.WithTimeout(ctx, ntfyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, healthURL, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%v)", err)}
	}
	resp, err := (&http.Client{Timeout: ntfyTimeout}).Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%s)", summarizeNetError(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", parsed.Host)}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}
