package safety

import (
	"errors"
	"testing"
)

// TestProtectedPathBlocking verifies protected paths are blocked
func TestProtectedPathBlocking(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"root slash", "/", true},
		{"etc", "/etc", true},
		{"etc subdir", "/etc/ssh", true},
		{"bin file", "/bin/bash", true},
		{"usr local", "/usr/local", true},
		{"boot", "/boot", true},
		{"lib", "/lib", true},
		{"sbin", "/sbin", true},
		{"cleaner state dir", "/var/lib/fs-directory-cleaner", true},
		{"cleaner state file", "/var/lib/fs-directory-cleaner/history.db", true},
		{"tmp allowed", "/tmp", false},
		{"tmp file", "/tmp/file.txt", false},
		{"home user", "/home/user", false},
	}

	protected := defaultProtected(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsProtectedPath(tt.path, protected)
			if result != tt.expected {
				t.Errorf("IsProtectedPath(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestAllowedRootEnforcement verifies paths are restricted to allowed roots
func TestAllowedRootEnforcement(t *testing.T) {
	allowed := []string{"/tmp/allowed", "/var/cleanup"}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"inside allowed tmp", "/tmp/allowed/file.txt", true},
		{"inside allowed var", "/var/cleanup/old.log", true},
		{"allowed root exact", "/tmp/allowed", true},
		{"outside allowed", "/tmp/notallowed/file.txt", false},
		{"parent of allowed", "/tmp", false},
		{"completely different", "/home/user/file.txt", false},
		{"root", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWithinAllowedRoots(tt.path, allowed)
			if result != tt.expected {
				t.Errorf("IsWithinAllowedRoots(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestValidateDeleteTarget exercises the full authorization decision
func TestValidateDeleteTarget(t *testing.T) {
	v := NewValidator([]string{"/data"}, nil)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"inside root", "/data/old/a.txt", nil},
		{"protected", "/etc/passwd", ErrProtectedPath},
		{"outside root", "/srv/other.txt", ErrOutsideAllowed},
		{"traversal", "/data/../etc/passwd", ErrProtectedPath},
		{"traversal inside root", "/data/sub/../a.txt", ErrTraversal},
		{"empty", "  ", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDeleteTarget(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDeleteTarget(%s) = %v, expected %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// TestDetectTraversal verifies ".." segments are caught in raw input
func TestDetectTraversal(t *testing.T) {
	if !DetectTraversal("/data/../etc") {
		t.Error("Expected traversal to be detected")
	}
	if DetectTraversal("/data/..hidden/file") {
		t.Error("Expected ..-prefixed name not to count as traversal")
	}
}
