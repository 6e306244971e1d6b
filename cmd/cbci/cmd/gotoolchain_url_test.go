package cmd

import "testing"

func TestJobTypeOrFromEnviron(t *testing.T) {
	tests := map[string]struct {
		jobType   string
		jobName   string
		expected  string
		expectErr bool
	}{
		"explicit job type wins": {
			jobType:  "windows",
			jobName:  "backup.macos.cv/master",
			expected: "windows",
		},
		"derived from JOB_NAME": {
			jobName:  "backup.macos.cv/master",
			expected: "macos",
		},
		"no job type anywhere": {
			expectErr: true,
		},
		"malformed JOB_NAME": {
			jobName:   "backup",
			expectErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JOB_NAME", test.jobName)

			jobType, err := jobTypeOrFromEnviron(test.jobType)

			if (err != nil) != test.expectErr {
				t.Fatalf("expectErr=%v, err=%v", test.expectErr, err)
			}

			if jobType != test.expected {
				t.Errorf("wanted job type %q but got %q", test.expected, jobType)
			}
		})
	}
}
