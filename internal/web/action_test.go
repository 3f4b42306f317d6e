package web

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		do      string
		want    Action
		wantErr bool
	}{
		{"", ActionManage, false},
		{"Manage", ActionManage, false},
		{"manage", ActionManage, false},
		{"Add", ActionAdd, false},
		{"Insert", ActionInsert, false},
		{"insert", ActionInsert, false},
		{"Edit", ActionEdit, false},
		{"Update", ActionUpdate, false},
		{"update", ActionUpdate, false},
		{"Delete", ActionDelete, false},
		{"delete", ActionDelete, false},
		{"Approve", ActionApprove, false},
		{"photo", ActionPhoto, false},
		{"bogus", 0, true},
		{"manage; drop", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.do)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAction(%q) error = %v, wantErr %v", tt.do, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.do, got, tt.want)
		}
	}
}
