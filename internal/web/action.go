package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Action is the operation selector carried by the "do" query parameter.
type Action int

// Actions. Manage is the default when "do" is absent.
const (
	ActionManage Action = iota
	ActionAdd
	ActionInsert
	ActionEdit
	ActionUpdate
	ActionDelete
	ActionApprove
	ActionPhoto
)

// ParseAction maps a "do" parameter value to an Action, case-insensitively.
// An empty value means Manage. Unknown values are an error; the router turns
// them into a 404 rather than rendering an empty page.
func ParseAction(do string) (Action, error) {
	switch strings.ToLower(do) {
	case "", "manage":
		return ActionManage, nil
	case "add":
		return ActionAdd, nil
	case "insert":
		return ActionInsert, nil
	case "edit":
		return ActionEdit, nil
	case "update":
		return ActionUpdate, nil
	case "delete":
		return ActionDelete, nil
	case "approve":
		return ActionApprove, nil
	case "photo":
		return ActionPhoto, nil
	default:
		return 0, fmt.Errorf("unknown action %q", do)
	}
}

// targetID reads a record identifier from the query string or form body,
// coercing absent or non-numeric values to 0 ("not found").
func targetID(r *http.Request, param string) int64 {
	id, err := strconv.ParseInt(r.FormValue(param), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
