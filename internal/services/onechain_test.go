package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOneChainService_SubmitClaim(t *testing.T) {
	var got oneChainClaimRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/claims" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode claim request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(oneChainClaimResponse{ClaimID: "0xclaim42"})
	}))
	defer server.Close()

	svc := NewOneChainService(server.URL, "0xpackage", "0xtreasury", testLogger())
	claimID, err := svc.SubmitClaim(context.Background(), RewardClaim{
		SessionRef:    "session-1234567890",
		PlayerAddress: "0xabc",
		Won:           true,
		Amount:        150_000_000,
	})
	if err != nil {
		t.Fatalf("SubmitClaim failed: %v", err)
	}
	if claimID != "0xclaim42" {
		t.Errorf("claim id = %q, want 0xclaim42", claimID)
	}

	if got.PackageID != "0xpackage" || got.TreasuryID != "0xtreasury" {
		t.Errorf("contract ids not forwarded: %+v", got)
	}
	if got.SessionRef != "session-1234567890" || got.Amount != 150_000_000 || !got.Won {
		t.Errorf("claim fields not forwarded: %+v", got)
	}
}

func TestOneChainService_SubmitClaim_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "bridge error message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(oneChainClaimResponse{Error: "treasury empty"})
			},
			wantErr: "treasury empty",
		},
		{
			name: "non-200 without error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("{}"))
			},
			wantErr: "status 502",
		},
		{
			name: "missing claim id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{}"))
			},
			wantErr: "no claim id",
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantErr: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := NewOneChainService(server.URL, "0xpackage", "0xtreasury", testLogger())
			_, err := svc.SubmitClaim(context.Background(), RewardClaim{SessionRef: "session-x", Won: true, Amount: 1})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v does not contain %q", err, tt.wantErr)
			}
		})
	}
}
