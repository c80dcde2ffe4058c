package governance

import (
	"group-manager/internal/testutil"
)

type mockAuditRepo = testutil.MockAuditRepo

func int64Ptr(i int64) *int64 { return &i }
func strPtr(s string) *string { return &s }
