package gerrit

import (
	"context"
	"reflect"
	"testing"
)

func TestReviewCommand(t *testing.T) {
	env := Env{Host: "review.couchbase.org", Port: "29418"}

	tests := map[string]struct {
		review       Review
		expectedArgv []string
	}{
		"passing run votes verified +1": {
			review: Review{
				Message:  "http://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/103/ : SUCCESS",
				Verified: 1,
				Revision: "8f6d07cf4f9e69965f2b6d5e33d8303e1051ca60",
			},
			expectedArgv: []string{
				"ssh", "-p", "29418", "buildbot@review.couchbase.org",
				"gerrit", "review",
				"-m", "'http://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/103/ : SUCCESS'",
				"--verified", "+1",
				"8f6d07cf4f9e69965f2b6d5e33d8303e1051ca60",
			},
		},
		"failing run votes verified -1": {
			review: Review{
				Message:  "http://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/104/ : FAILURE",
				Verified: -1,
				Revision: "0ff1ceb4dc0ffeeb4dc0ffeeb4dc0ffeeb4dc0ff",
			},
			expectedArgv: []string{
				"ssh", "-p", "29418", "buildbot@review.couchbase.org",
				"gerrit", "review",
				"-m", "'http://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/104/ : FAILURE'",
				"--verified", "-1",
				"0ff1ceb4dc0ffeeb4dc0ffeeb4dc0ffeeb4dc0ff",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			argv := env.ReviewCommand("buildbot", test.review)
			if !reflect.DeepEqual(test.expectedArgv, argv) {
				t.Errorf("expected argv\n%q\nbut got\n%q", test.expectedArgv, argv)
			}
		})
	}
}

func TestVerifiedFlag(t *testing.T) {
	tests := map[int]string{
		1:  "+1",
		2:  "+2",
		0:  "0",
		-1: "-1",
	}

	for score, expected := range tests {
		if actual := verifiedFlag(score); actual != expected {
			t.Errorf("expected %q for score %d but got %q", expected, score, actual)
		}
	}
}

func TestSubmitWithoutRevisionIsANoOp(t *testing.T) {
	// a manual rebuild has no patchset to vote on; nothing should run and
	// nothing should fail
	err := Submit(context.Background(), Env{}, "buildbot", Review{Message: "manual run", Verified: 1})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSSHSubmitterWithoutRevisionIsANoOp(t *testing.T) {
	s := &SSHSubmitter{User: "buildbot", KeyFile: "does-not-exist"}
	if err := s.Submit(Env{}, Review{Message: "manual run", Verified: 1}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
