package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// contains the http utils of the commands talking to a running server.

// apiError is the error returned by the server, with its machine readable code.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// endpoint joins the API path elements to the server's base URL, escaping them.
func endpoint(server string, elem ...string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", server, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: want scheme://host[:port]", server)
	}
	return u.JoinPath(append([]string{"api"}, elem...)...).String(), nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	return decodeResponse(resp, data)
}

// jwpost posts body as JSON and unmarshals the JSON response into the provided data structure.
func jwpost(client *http.Client, addr string, body, data any) error {
	content, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(addr, "application/json", bytes.NewReader(content))
	if err != nil {
		return err
	}
	return decodeResponse(resp, data)
}

// decodeResponse reads a JSON response, errors are decoded as *apiError.
func decodeResponse(resp *http.Response, data any) error {
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		e := &apiError{Status: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(buf.Bytes(), &body) == nil {
			e.Code, e.Message = body.Code, body.Error
		}
		return e
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// jget evaluates path on a decoded JSON value.
func jget(v any, path string) (any, error) {
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return jval, nil
}

// jstring evaluates path to a string.
func jstring(v any, path string) (string, error) {
	jval, err := jget(v, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error reading %q: not a string: %v", path, jval)
	}
	return s, nil
}

// jfloat evaluates path to a number.
func jfloat(v any, path string) (float64, error) {
	jval, err := jget(v, path)
	if err != nil {
		return 0, err
	}
	f, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error reading %q: not a number: %v", path, jval)
	}
	return f, nil
}

// jlist evaluates a wildcard path to a list.
func jlist(v any, path string) ([]any, error) {
	jval, err := jget(v, path)
	if err != nil {
		return nil, err
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error reading %q: not a list: %v", path, jval)
	}
	return list, nil
}
