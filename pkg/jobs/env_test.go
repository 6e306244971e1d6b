package jobs

import "testing"

func TestResultURL(t *testing.T) {
	tests := map[string]struct {
		serverURL   string
		jobName     string
		buildNumber string
		expected    string
	}{
		"multibranch job": {
			serverURL:   "https://cv.jenkins.couchbase.com",
			jobName:     "backup.linux.cv/master",
			buildNumber: "12",
			expected:    "https://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/12/",
		},
		"flat job": {
			serverURL:   "https://cv.jenkins.couchbase.com",
			jobName:     "cbbs.windows.cv",
			buildNumber: "3",
			expected:    "https://cv.jenkins.couchbase.com/job/cbbs.windows.cv/3/",
		},
		"trailing slash on server": {
			serverURL:   "https://cv.jenkins.couchbase.com/",
			jobName:     "backup.linux.cv/master",
			buildNumber: "12",
			expected:    "https://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/12/",
		},
		"missing build number links the job page": {
			serverURL: "https://cv.jenkins.couchbase.com",
			jobName:   "backup.linux.cv/master",
			expected:  "https://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ResultURL(test.serverURL, test.jobName, test.buildNumber); got != test.expected {
				t.Errorf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestBuildEnvFromEnviron(t *testing.T) {
	t.Setenv("JOB_NAME", "backup.linux.cv/master")
	t.Setenv("BRANCH_NAME", "master")
	t.Setenv("BUILD_NUMBER", "7")
	t.Setenv("WORKSPACE", "/data/jenkins/workspace/backup.linux.cv")

	env := BuildEnvFromEnviron()

	if env.JobName != "backup.linux.cv/master" {
		t.Errorf("unexpected JobName %q", env.JobName)
	}
	if env.Branch != "master" {
		t.Errorf("unexpected Branch %q", env.Branch)
	}
	if env.BuildNumber != "7" {
		t.Errorf("unexpected BuildNumber %q", env.BuildNumber)
	}
	if env.Workspace != "/data/jenkins/workspace/backup.linux.cv" {
		t.Errorf("unexpected Workspace %q", env.Workspace)
	}
}
