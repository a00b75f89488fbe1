package webhook_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github-asana-bridge/internal/backlink"
	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
	"github-asana-bridge/internal/tasklink"
	"github-asana-bridge/internal/webhook"
	"github-asana-bridge/pkg/asana"
	pkgLog "github-asana-bridge/pkg/log"
)

type fakeBacklink struct {
	mu      sync.Mutex
	events  []model.RawEvent
	ids     []string
	ctxErrs []error
	err     error
}

func (f *fakeBacklink) ProcessEvent(ctx context.Context, input backlink.ProcessEventInput) (backlink.ProcessEventOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, input.Event)
	f.ids = append(f.ids, pkgLog.DeliveryID(ctx))
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return backlink.ProcessEventOutput{}, f.err
	}
	return backlink.ProcessEventOutput{}, nil
}

func (f *fakeBacklink) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type recordingTracker struct {
	mu       sync.Mutex
	comments []string
}

func (r *recordingTracker) AddComment(ctx context.Context, taskGID, htmlText string) (*asana.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, taskGID)
	return &asana.Story{GID: "s-" + taskGID}, nil
}

func (r *recordingTracker) AddProject(ctx context.Context, taskGID string, req asana.AddProjectRequest) error {
	return ctx.Err()
}

const issuePayload = `{"action":"opened","issue":{"body":"fixes https://app.asana.com/0/111/222","html_url":"https://github.com/x/y/issues/1","title":"Bug"}}`

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

var _ = Describe("GitHubWebhookHandler", func() {
	var (
		router *gin.Engine
		uc     *fakeBacklink
		cfg    webhook.Config
	)

	post := func(body, contentType string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewBufferString(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		uc = &fakeBacklink{}
		cfg = webhook.Config{DedupSize: 16, DedupTTL: time.Minute}
	})

	JustBeforeEach(func() {
		router = gin.New()
		h := webhook.NewHandler(uc, cfg, pkgLog.NewNop())
		router.POST("/webhook/github", h.HandleGitHubWebhook)
	})

	Context("payload decoding", func() {
		It("accepts a JSON object", func() {
			w := post(issuePayload, "application/json", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(BeEmpty())
			Expect(uc.events).To(HaveLen(1))
			Expect(uc.events[0].Action).To(Equal(model.ActionOpened))
			Expect(uc.events[0].Issue.HTMLURL).To(Equal("https://github.com/x/y/issues/1"))
		})

		It("accepts a JSON string holding the object", func() {
			encoded, _ := json.Marshal(issuePayload)
			w := post(string(encoded), "application/json", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(uc.events).To(HaveLen(1))
			Expect(uc.events[0].Issue.Title).To(Equal("Bug"))
		})

		It("accepts a form-encoded payload", func() {
			form := url.Values{"payload": {issuePayload}}.Encode()
			w := post(form, "application/x-www-form-urlencoded", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(uc.events).To(HaveLen(1))
			Expect(uc.events[0].Issue.Body).To(ContainSubstring("fixes"))
		})

		It("decodes edit changes", func() {
			body := `{"action":"edited","changes":{"body":{"from":"old"}},"issue":{"body":"new","html_url":"u"}}`
			w := post(body, "application/json", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(uc.events[0].PreviousBody()).To(Equal("old"))
		})

		DescribeTable("rejects bad bodies with 400",
			func(body, contentType, wantBody string) {
				w := post(body, contentType, nil)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(ContainSubstring(wantBody))
				Expect(uc.calls()).To(BeZero())
			},
			Entry("empty body", "", "application/json", "No request body"),
			Entry("whitespace", "  \n", "application/json", "No request body"),
			Entry("null", "null", "application/json", "No request body"),
			Entry("empty form payload", "payload=", "application/x-www-form-urlencoded", "No request body"),
			Entry("malformed JSON", `{"action":`, "application/json", "invalid webhook payload"),
			Entry("JSON array", `[1,2]`, "application/json", "invalid webhook payload"),
			Entry("string holding garbage", `"not json"`, "application/json", "invalid webhook payload"),
		)
	})

	Context("processing", func() {
		It("returns 500 with the error text when processing fails", func() {
			uc.err = errors.New("failed to render task notification: boom")
			w := post(issuePayload, "application/json", nil)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(Equal("failed to render task notification: boom"))
		})

		It("attaches the delivery id to the context", func() {
			post(issuePayload, "application/json", map[string]string{"X-GitHub-Delivery": "d-1"})

			Expect(uc.ids).To(Equal([]string{"d-1"}))
		})

		It("keeps processing when the client goes away", func() {
			reqCtx, cancel := context.WithCancel(context.Background())
			cancel()

			req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewBufferString(issuePayload)).WithContext(reqCtx)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-GitHub-Delivery", "d-gone")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(uc.ctxErrs).To(Equal([]error{nil}))
			Expect(uc.ids).To(Equal([]string{"d-gone"}))
		})

		It("generates a delivery id when GitHub sends none", func() {
			post(issuePayload, "application/json", nil)

			Expect(uc.ids).To(HaveLen(1))
			Expect(uc.ids[0]).NotTo(BeEmpty())
		})
	})

	Context("delivery de-duplication", func() {
		It("processes a delivery id once", func() {
			headers := map[string]string{"X-GitHub-Delivery": "d-2"}

			Expect(post(issuePayload, "application/json", headers).Code).To(Equal(http.StatusOK))
			Expect(post(issuePayload, "application/json", headers).Code).To(Equal(http.StatusOK))
			Expect(uc.calls()).To(Equal(1))
		})

		It("processes a redelivery after a failure", func() {
			headers := map[string]string{"X-GitHub-Delivery": "d-3"}
			uc.err = errors.New("boom")
			Expect(post(issuePayload, "application/json", headers).Code).To(Equal(http.StatusInternalServerError))

			uc.err = nil
			Expect(post(issuePayload, "application/json", headers).Code).To(Equal(http.StatusOK))
			Expect(uc.calls()).To(Equal(2))
		})

		When("disabled", func() {
			BeforeEach(func() {
				cfg.DedupSize = 0
			})

			It("processes every delivery", func() {
				headers := map[string]string{"X-GitHub-Delivery": "d-4"}
				post(issuePayload, "application/json", headers)
				post(issuePayload, "application/json", headers)

				Expect(uc.calls()).To(Equal(2))
			})
		})
	})

	Context("signature validation", func() {
		BeforeEach(func() {
			cfg.Secret = "s3cret"
		})

		It("accepts a valid signature", func() {
			w := post(issuePayload, "application/json", map[string]string{
				"X-Hub-Signature-256": sign("s3cret", issuePayload),
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(uc.calls()).To(Equal(1))
		})

		It("signs the raw form body", func() {
			form := url.Values{"payload": {issuePayload}}.Encode()
			w := post(form, "application/x-www-form-urlencoded", map[string]string{
				"X-Hub-Signature-256": sign("s3cret", form),
			})

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		DescribeTable("rejects with 400",
			func(signature string) {
				w := post(issuePayload, "application/json", map[string]string{"X-Hub-Signature-256": signature})

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(Equal(webhook.ErrInvalidSignature.Error()))
				Expect(uc.calls()).To(BeZero())
			},
			Entry("missing", ""),
			Entry("wrong secret", sign("other", issuePayload)),
			Entry("no prefix", "deadbeef"),
			Entry("bad hex", "sha256=zz"),
		)
	})
})

var _ = Describe("GitHubWebhookHandler with the backlink usecase", func() {
	It("syncs every reference of a request canceled by the client", func() {
		gin.SetMode(gin.TestMode)
		tracker := &recordingTracker{}
		uc := backlink.New(tasklink.MustGrammar(tasklink.DefaultHost), notify.New(), tracker, nil, backlink.Config{}, pkgLog.NewNop())

		router := gin.New()
		h := webhook.NewHandler(uc, webhook.Config{DedupSize: 16, DedupTTL: time.Minute}, pkgLog.NewNop())
		router.POST("/webhook/github", h.HandleGitHubWebhook)

		reqCtx, cancel := context.WithCancel(context.Background())
		cancel()

		body := `{"action":"opened","issue":{"body":"https://app.asana.com/0/1/2 and https://app.asana.com/0/1/3","html_url":"https://github.com/x/y/issues/1"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewBufferString(body)).WithContext(reqCtx)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(tracker.comments).To(ConsistOf("2", "3"))
	})
})

var _ = Describe("SignatureValidator", func() {
	It("is disabled without a secret", func() {
		v := webhook.NewSignatureValidator("")

		Expect(v.Enabled()).To(BeFalse())
		Expect(v.Validate([]byte("x"), "")).To(Succeed())
	})

	It("reports ErrInvalidSignature", func() {
		v := webhook.NewSignatureValidator("k")

		err := v.Validate([]byte("x"), sign("k", "y"))
		Expect(errors.Is(err, webhook.ErrInvalidSignature)).To(BeTrue())
	})
})
