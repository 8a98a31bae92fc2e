package models

import "encoding/json"

// ErrorList holds the errors field of the response envelope, which the backend
// serializes either as a single string or as an array of strings.
type ErrorList []string

func (e *ErrorList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = ErrorList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*e = many
	return nil
}

// APIResponse is the uniform envelope every backend endpoint answers with.
// Result stays raw until the caller decodes it into the expected shape.
type APIResponse struct {
	Ok            bool            `json:"ok"`
	StatusCode    int             `json:"statusCode"`
	StatusMessage string          `json:"statusMessage"`
	Result        json.RawMessage `json:"result,omitempty"`
	Errors        ErrorList       `json:"errors,omitempty"`
}
