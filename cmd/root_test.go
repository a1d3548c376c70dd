package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServices serves the GitHub GraphQL and REST endpoints, the Slack Web API
// and a Pushgateway from one test server.
type fakeServices struct {
	mu          sync.Mutex
	graphql     func(query string) string
	slackForm   map[string]string
	attachments []slack.Attachment
	pushedPath  string
	// githubRequests counts GraphQL and REST calls.
	githubRequests int
}

func (f *fakeServices) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/api/graphql":
		f.githubRequests++
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		fmt.Fprint(w, f.graphql(body.Query))
	case r.URL.Path == "/api/v3/rate_limit":
		f.githubRequests++
		fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4990,"reset":1791979200}}}`)
	case r.URL.Path == "/slack/chat.postMessage":
		_ = r.ParseForm()
		f.slackForm = map[string]string{"channel": r.PostForm.Get("channel"), "as_user": r.PostForm.Get("as_user")}
		_ = json.Unmarshal([]byte(r.PostForm.Get("attachments")), &f.attachments)
		fmt.Fprint(w, `{"ok":true,"channel":"C123","ts":"1.0"}`)
	case strings.HasPrefix(r.URL.Path, "/push/"):
		_, _ = io.Copy(io.Discard, r.Body)
		f.pushedPath = r.URL.Path
	default:
		http.NotFound(w, r)
	}
}

// runCLI executes the root command against the fake services.
func runCLI(t *testing.T, f *fakeServices, configYAML string, args ...string) (string, error) {
	t.Helper()
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	configPath := filepath.Join(dir, "debriefr.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o600))

	t.Setenv("GH_API_URL", server.URL+"/api/graphql")
	t.Setenv("GH_API_TOKEN", "gh-test-token")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_API_URL", server.URL+"/slack/")
	t.Setenv("SLACK_CHANNEL", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", configPath, "--pushgateway", server.URL+"/push"))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	t.Log(errOut.String())
	return out.String(), err
}

func fieldValue(att slack.Attachment, title string) string {
	for _, f := range att.Fields {
		if f.Title == title {
			return f.Value
		}
	}
	return ""
}

func TestUserCommand(t *testing.T) {
	now := time.Now().Format(time.RFC3339)
	f := &fakeServices{graphql: func(query string) string {
		return fmt.Sprintf(`{"data":{"user":{
  "name":"Alice","avatarUrl":"https://avatars.example/alice","url":"https://github.com/alice",
  "closedIssues":{"nodes":[{"title":"fix","author":{"login":"alice"},"repository":{"name":"api","owner":{"login":"acme"}},"createdAt":%[1]q,"closedAt":%[1]q}]},
  "openIssues":{"nodes":[]},
  "contributions":{"nodes":[
    {"name":"api","owner":{"login":"acme"},"refs":{"nodes":[
      {"repository":{"name":"api"},"target":{"history":{"edges":[
        {"node":{"committedDate":%[1]q,"author":{"user":{"login":"alice"}}}},
        {"node":{"committedDate":%[1]q,"author":{"user":{"login":"alice"}}}}
      ]}}}
    ]}},
    {"name":"dotfiles","owner":{"login":"alice"},"refs":{"nodes":[
      {"repository":{"name":"dotfiles"},"target":{"history":{"edges":[
        {"node":{"committedDate":%[1]q,"author":{"user":{"login":"alice"}}}}
      ]}}}
    ]}}
  ]}
}}}`, now)
	}}

	out, err := runCLI(t, f, "slack:\n  channel: \"#general\"\n",
		"user", "alice", "--interval", "DAILY", "--organization", "acme", "--message", "good day")

	require.NoError(t, err)
	assert.Contains(t, out, "Daily summary of alice sent to #general")
	assert.Equal(t, map[string]string{"channel": "#general", "as_user": "true"}, f.slackForm)
	require.Len(t, f.attachments, 1)
	att := f.attachments[0]
	assert.Equal(t, "Daily summary", att.Title)
	assert.Equal(t, "good day", att.Text)
	assert.Equal(t, "Alice", att.AuthorName)
	assert.Equal(t, "1", fieldValue(att, "Closed issues"))
	assert.Equal(t, "0", fieldValue(att, "Opened issues"))
	assert.Equal(t, "2", fieldValue(att, "Commits"))
	assert.Equal(t, "#1: 2 commits in api", fieldValue(att, "Top repositories"))
	assert.Equal(t, "/push/metrics/job/debriefr", f.pushedPath)
}

func TestTeamCommand(t *testing.T) {
	now := time.Now().Format(time.RFC3339)
	f := &fakeServices{graphql: func(query string) string {
		switch {
		case strings.Contains(query, "pullRequests("):
			return fmt.Sprintf(`{"data":{"organization":{"login":"acme","name":"Acme","avatarUrl":"","url":"",
  "repositories":{"edges":[{"node":{"name":"api","pullRequests":{"edges":[
    {"node":{"headRefName":"feat","baseRefName":"main","author":{"login":"carol"},"mergedBy":{"login":"alice"},"createdAt":%[1]q,"closedAt":%[1]q,"mergedAt":%[1]q}}
  ]}}}]}}}}`, now)
		case strings.Contains(query, "issues("):
			return fmt.Sprintf(`{"data":{"organization":{"login":"acme","name":"Acme","avatarUrl":"","url":"",
  "repositories":{"edges":[{"node":{"name":"api","issues":{"edges":[
    {"node":{"title":"bug","author":{"login":"dave"},"createdAt":%[1]q,"closedAt":%[1]q}}
  ]}}}]}}}}`, now)
		default:
			return fmt.Sprintf(`{"data":{"organization":{"login":"acme","name":"Acme","avatarUrl":"","url":"",
  "repositories":{"edges":[
    {"node":{"name":"api","refs":{"nodes":[{"target":{"history":{"edges":[
      {"node":{"committedDate":%[1]q,"author":{"user":{"login":"alice"}}}},
      {"node":{"committedDate":%[1]q,"author":{"user":{"login":"carol"}}}},
      {"node":{"committedDate":%[1]q,"author":{"user":{"login":"dave"}}}}
    ]}}}]}}},
    {"node":{"name":"sandbox","refs":{"nodes":[{"target":{"history":{"edges":[
      {"node":{"committedDate":%[1]q,"author":{"user":{"login":"alice"}}}}
    ]}}}]}}}
  ]}}}}`, now)
		}
	}}

	const profile = `
slack:
  channel: "#general"
profiles:
  platform:
    team:
      organization: acme
      interval: weekly
      members: [alice]
      exclude: [sandbox]
      slack:
        channel: "#platform"
`
	out, err := runCLI(t, f, profile, "team", "carol", "--profile", "platform", "--interval", "daily")

	require.NoError(t, err)
	assert.Contains(t, out, "Daily team summary of acme sent to #platform")
	assert.Equal(t, "#platform", f.slackForm["channel"])
	require.Len(t, f.attachments, 1)
	att := f.attachments[0]
	assert.Equal(t, "Daily team summary", att.Title)
	assert.Equal(t, "acme", att.Footer)
	assert.Equal(t, "0", fieldValue(att, "Closed issues"))
	assert.Equal(t, "2", fieldValue(att, "Commits"))
	assert.Equal(t, "1", fieldValue(att, "Created pull requests"))
	assert.Equal(t, "1", fieldValue(att, "Merged pull requests"))
	assert.Equal(t, "alice\ncarol", fieldValue(att, "Team"))
	assert.Equal(t, "#1: 2 commits in api", fieldValue(att, "Top repositories"))
	assert.Equal(t, "/push/metrics/job/debriefr", f.pushedPath)
}

func TestTeamCommand_MissingOrganization(t *testing.T) {
	f := &fakeServices{graphql: func(string) string { return `{"data":{"organization":null}}` }}

	out, err := runCLI(t, f, "slack:\n  channel: \"#general\"\n",
		"team", "alice", "--profile=", "--organization=", "--interval", "daily")

	require.ErrorIs(t, err, domain.ErrMissingOrganization)
	assert.Empty(t, out)
	assert.Zero(t, f.githubRequests, "no GitHub call is made without an organization")
	assert.Nil(t, f.slackForm)
}
