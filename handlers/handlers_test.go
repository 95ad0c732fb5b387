// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

// newTestService creates a service backed by an in-memory ledger and runs
// InitElection, returning the service and the issued admin key.
func newTestService(t *testing.T, variant string) (*Service, string) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	cfg.Variant = variant
	svc := NewService(testutil.SetupTestStore(t), cfg)

	req := testutil.MakeRequest("POST", "/election", nil, nil)
	w := httptest.NewRecorder()
	svc.InitElection(w, req)
	testutil.AssertStatus(t, w, 201)

	var resp models.InitElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.AdminKey == "" || resp.ElectionID == "" {
		t.Fatal("Expected election ID and admin key in init response")
	}
	return svc, resp.AdminKey
}

func adminHeaders(adminKey string) map[string]string {
	return map[string]string{"X-Admin-Key": adminKey}
}

func voterHeaders(address string) map[string]string {
	return map[string]string{"X-Voter-Address": address}
}

func registerVoter(t *testing.T, svc *Service, adminKey, address string) {
	t.Helper()
	req := testutil.MakeRequest("POST", "/election/voters",
		models.RegisterVoterRequest{Address: address}, adminHeaders(adminKey))
	w := httptest.NewRecorder()
	svc.RegisterVoter(w, req)
	testutil.AssertStatus(t, w, 201)
}

func TestInitElection(t *testing.T) {
	svc, _ := newTestService(t, models.VariantExtended)

	// A second init must conflict: the server runs exactly one election
	req := testutil.MakeRequest("POST", "/election", nil, nil)
	w := httptest.NewRecorder()
	svc.InitElection(w, req)
	testutil.AssertStatus(t, w, 409)
}

func TestInitElection_VariantFromConfig(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.Variant = models.VariantStrict
	svc := NewService(testutil.SetupTestStore(t), cfg)

	req := testutil.MakeRequest("POST", "/election", nil, nil)
	w := httptest.NewRecorder()
	svc.InitElection(w, req)
	testutil.AssertStatus(t, w, 201)

	var resp models.InitElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Variant != models.VariantStrict {
		t.Errorf("Expected variant strict, got %s", resp.Variant)
	}
}

func TestRegisterVoter(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)

	req := testutil.MakeRequest("POST", "/election/voters",
		models.RegisterVoterRequest{Address: "alice"}, adminHeaders(adminKey))
	w := httptest.NewRecorder()
	svc.RegisterVoter(w, req)
	testutil.AssertStatus(t, w, 201)

	var resp models.RegisterVotersResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VoterCount != 1 {
		t.Errorf("Expected voter count 1, got %d", resp.VoterCount)
	}

	t.Run("duplicate address conflicts", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/voters",
			models.RegisterVoterRequest{Address: "alice"}, adminHeaders(adminKey))
		w := httptest.NewRecorder()
		svc.RegisterVoter(w, req)
		testutil.AssertStatus(t, w, 409)
	})

	t.Run("invalid admin key", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/voters",
			models.RegisterVoterRequest{Address: "bob"}, adminHeaders("wrong-key"))
		w := httptest.NewRecorder()
		svc.RegisterVoter(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("empty address", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/voters",
			models.RegisterVoterRequest{}, adminHeaders(adminKey))
		w := httptest.NewRecorder()
		svc.RegisterVoter(w, req)
		testutil.AssertStatus(t, w, 400)
	})
}

func TestRegisterVoter_RequiresInit(t *testing.T) {
	svc := NewService(testutil.SetupTestStore(t), testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/election/voters",
		models.RegisterVoterRequest{Address: "alice"}, adminHeaders("any"))
	w := httptest.NewRecorder()
	svc.RegisterVoter(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestRegisterVoters_StrictBatchIsAtomic(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantStrict)
	registerVoter(t, svc, adminKey, "alice")

	// alice repeats inside the batch: nothing may register
	req := testutil.MakeRequest("POST", "/election/voters/batch",
		models.RegisterVotersRequest{Addresses: []string{"bob", "alice", "carol"}},
		adminHeaders(adminKey))
	w := httptest.NewRecorder()
	svc.RegisterVoters(w, req)
	testutil.AssertStatus(t, w, 409)

	statusW := httptest.NewRecorder()
	svc.GetStatus(statusW, testutil.MakeRequest("GET", "/election", nil, nil))
	var status models.ElectionStatusResponse
	testutil.AssertJSON(t, statusW, &status)
	if status.VoterCount != 1 {
		t.Errorf("Expected rejected batch to register nobody, voter count %d", status.VoterCount)
	}
}

func TestRegisterVoters_ExtendedBatchSkipsDuplicates(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	req := testutil.MakeRequest("POST", "/election/voters/batch",
		models.RegisterVotersRequest{Addresses: []string{"bob", "alice", "carol"}},
		adminHeaders(adminKey))
	w := httptest.NewRecorder()
	svc.RegisterVoters(w, req)
	testutil.AssertStatus(t, w, 201)

	var resp models.RegisterVotersResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VoterCount != 3 {
		t.Errorf("Expected voter count 3, got %d", resp.VoterCount)
	}
}

func TestOpenProposals_RequiresVoters(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)

	req := testutil.MakeRequest("POST", "/election/proposals/open", nil, adminHeaders(adminKey))
	w := httptest.NewRecorder()
	svc.OpenProposals(w, req)
	testutil.AssertStatus(t, w, 409)
}

func TestStageTransitions_RejectOutOfOrder(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	// Voting cannot open from the registration stage
	w := httptest.NewRecorder()
	svc.OpenVoting(w, testutil.MakeRequest("POST", "/election/voting/open", nil, adminHeaders(adminKey)))
	testutil.AssertStatus(t, w, 409)

	w = httptest.NewRecorder()
	svc.OpenProposals(w, testutil.MakeRequest("POST", "/election/proposals/open", nil, adminHeaders(adminKey)))
	testutil.AssertStatus(t, w, 200)

	var resp models.StageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Stage.String() != "proposals_open" {
		t.Errorf("Expected stage proposals_open, got %s", resp.Stage)
	}

	// And never backward: reopening registration-era operations conflicts
	w = httptest.NewRecorder()
	svc.RegisterVoter(w, testutil.MakeRequest("POST", "/election/voters",
		models.RegisterVoterRequest{Address: "bob"}, adminHeaders(adminKey)))
	testutil.AssertStatus(t, w, 409)
}

func TestSubmitProposal(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	t.Run("wrong stage", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/proposals",
			models.SubmitProposalRequest{Description: "Option A"}, voterHeaders("alice"))
		w := httptest.NewRecorder()
		svc.SubmitProposal(w, req)
		testutil.AssertStatus(t, w, 409)
	})

	w := httptest.NewRecorder()
	svc.OpenProposals(w, testutil.MakeRequest("POST", "/election/proposals/open", nil, adminHeaders(adminKey)))
	testutil.AssertStatus(t, w, 200)

	t.Run("registered voter", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/proposals",
			models.SubmitProposalRequest{Description: "Option A"}, voterHeaders("alice"))
		w := httptest.NewRecorder()
		svc.SubmitProposal(w, req)
		testutil.AssertStatus(t, w, 201)

		var resp models.SubmitProposalResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ProposalID != 1 {
			t.Errorf("Expected proposal ID 1, got %d", resp.ProposalID)
		}
	})

	t.Run("unregistered caller", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/proposals",
			models.SubmitProposalRequest{Description: "Option B"}, voterHeaders("mallory"))
		w := httptest.NewRecorder()
		svc.SubmitProposal(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("missing voter header", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/proposals",
			models.SubmitProposalRequest{Description: "Option C"}, nil)
		w := httptest.NewRecorder()
		svc.SubmitProposal(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("empty description", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/election/proposals",
			models.SubmitProposalRequest{}, voterHeaders("alice"))
		w := httptest.NewRecorder()
		svc.SubmitProposal(w, req)
		testutil.AssertStatus(t, w, 400)
	})
}

func TestGetStatus_RequiresInit(t *testing.T) {
	svc := NewService(testutil.SetupTestStore(t), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	svc.GetStatus(w, testutil.MakeRequest("GET", "/election", nil, nil))
	testutil.AssertStatus(t, w, 404)
}

func TestGetWinner_BeforeTally(t *testing.T) {
	svc, _ := newTestService(t, models.VariantExtended)

	w := httptest.NewRecorder()
	svc.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, nil))
	testutil.AssertStatus(t, w, 409)
}

func TestGetVoter(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	t.Run("found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/election/voters/alice", nil, nil)
		req.SetPathValue("address", "alice")
		w := httptest.NewRecorder()
		svc.GetVoter(w, req)
		testutil.AssertStatus(t, w, 200)

		var voter struct {
			Address    string `json:"address"`
			Registered bool   `json:"registered"`
			Voted      bool   `json:"voted"`
		}
		testutil.AssertJSON(t, w, &voter)
		if voter.Address != "alice" || !voter.Registered || voter.Voted {
			t.Errorf("Unexpected voter record: %+v", voter)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/election/voters/nobody", nil, nil)
		req.SetPathValue("address", "nobody")
		w := httptest.NewRecorder()
		svc.GetVoter(w, req)
		testutil.AssertStatus(t, w, 404)
	})
}

func TestGetProposal(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	w := httptest.NewRecorder()
	svc.OpenProposals(w, testutil.MakeRequest("POST", "/election/proposals/open", nil, adminHeaders(adminKey)))
	testutil.AssertStatus(t, w, 200)

	w = httptest.NewRecorder()
	svc.SubmitProposal(w, testutil.MakeRequest("POST", "/election/proposals",
		models.SubmitProposalRequest{Description: "Option A"}, voterHeaders("alice")))
	testutil.AssertStatus(t, w, 201)

	t.Run("found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/election/proposals/1", nil, nil)
		req.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		svc.GetProposal(w, req)
		testutil.AssertStatus(t, w, 200)
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/election/proposals/99", nil, nil)
		req.SetPathValue("id", "99")
		w := httptest.NewRecorder()
		svc.GetProposal(w, req)
		testutil.AssertStatus(t, w, 404)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/election/proposals/abc", nil, nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		svc.GetProposal(w, req)
		testutil.AssertStatus(t, w, 400)
	})
}

func TestListProposals_RequiresRegisteredCaller(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	w := httptest.NewRecorder()
	svc.ListProposals(w, testutil.MakeRequest("GET", "/election/proposals", nil, voterHeaders("mallory")))
	testutil.AssertStatus(t, w, 401)

	w = httptest.NewRecorder()
	svc.ListProposals(w, testutil.MakeRequest("GET", "/election/proposals", nil, voterHeaders("alice")))
	testutil.AssertStatus(t, w, 200)
}

func TestGetEvents(t *testing.T) {
	svc, adminKey := newTestService(t, models.VariantExtended)
	registerVoter(t, svc, adminKey, "alice")

	t.Run("anonymous caller", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.GetEvents(w, testutil.MakeRequest("GET", "/election/events", nil, nil))
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("admin key", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.GetEvents(w, testutil.MakeRequest("GET", "/election/events", nil, adminHeaders(adminKey)))
		testutil.AssertStatus(t, w, 200)

		var entries []struct {
			Kind string `json:"kind"`
			Seq  uint64 `json:"seq"`
		}
		testutil.AssertJSON(t, w, &entries)
		if len(entries) != 1 {
			t.Fatalf("Expected 1 ledger entry, got %d", len(entries))
		}
		if entries[0].Kind != "voter_registered" {
			t.Errorf("Expected voter_registered entry, got %s", entries[0].Kind)
		}
	})

	t.Run("registered voter", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.GetEvents(w, testutil.MakeRequest("GET", "/election/events", nil, voterHeaders("alice")))
		testutil.AssertStatus(t, w, 200)
	})

	t.Run("invalid limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.GetEvents(w, testutil.MakeRequest("GET", "/election/events?limit=zero", nil, adminHeaders(adminKey)))
		testutil.AssertStatus(t, w, 400)
	})
}
