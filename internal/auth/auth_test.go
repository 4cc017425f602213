package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"studyfortress/internal/auth"
)

var _ = Describe("Service", func() {
	var (
		svc *auth.Service
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		svc = auth.New(auth.Options{Secret: "test-secret", TTL: time.Hour}, nil)
	})

	Context("validating the login form", func() {
		It("requires both fields", func() {
			_, _, err := svc.Login(ctx, auth.Credentials{})
			var verr *auth.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Fields).To(HaveLen(2))
			Expect(verr.For("email")).To(Equal("this field is required"))
			Expect(verr.For("password")).To(Equal("this field is required"))
		})

		It("rejects a malformed email", func() {
			_, _, err := svc.Login(ctx, auth.Credentials{Email: "not-an-email", Password: "x"})
			var verr *auth.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.For("email")).To(ContainSubstring("valid email"))
			Expect(verr.For("password")).To(BeEmpty())
		})
	})

	Context("signing in", func() {
		It("accepts any well-formed credentials", func() {
			u, token, err := svc.Login(ctx, auth.Credentials{Email: "Alex.Johnson@Email.com", Password: "pw"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("alex.johnson@email.com"))
			Expect(u.ID).NotTo(BeEmpty())
			Expect(token).NotTo(BeEmpty())

			parsed, err := svc.Parse(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(u))
		})

		It("maps the same email to the same user id", func() {
			a, _, _ := svc.Login(ctx, auth.Credentials{Email: "a@b.co", Password: "1"})
			b, _, _ := svc.Login(ctx, auth.Credentials{Email: "A@B.CO", Password: "2"})
			Expect(a.ID).To(Equal(b.ID))
		})

		It("gives up when the context is cancelled during the delay", func() {
			slow := auth.New(auth.Options{Secret: "s", TTL: time.Hour, Delay: time.Minute}, nil)
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := slow.Login(cctx, auth.Credentials{Email: "a@b.co", Password: "x"})
			Expect(errors.Cause(err)).To(Equal(context.Canceled))
		})
	})

	Context("parsing tokens", func() {
		It("rejects tokens signed with another secret", func() {
			other := auth.New(auth.Options{Secret: "other", TTL: time.Hour}, nil)
			token, err := other.Issue(auth.User{Email: "a@b.co"})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.Parse(token)
			Expect(errors.Cause(err)).To(Equal(auth.ErrInvalidSession))
		})

		It("rejects expired tokens", func() {
			issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			svc.SetClock(func() time.Time { return issued })
			token, err := svc.Issue(auth.User{Email: "a@b.co"})
			Expect(err).NotTo(HaveOccurred())

			svc.SetClock(func() time.Time { return issued.Add(2 * time.Hour) })
			_, err = svc.Parse(token)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty token", func() {
			_, err := svc.Parse("")
			Expect(err).To(Equal(auth.ErrInvalidSession))
		})
	})

	Context("the Require middleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = svc.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := auth.UserFrom(r.Context())
				Expect(ok).To(BeTrue())
				_, _ = w.Write([]byte(u.Email))
			}))
		})

		It("redirects anonymous requests to the login page", func() {
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/login"))
		})

		It("tells htmx requests where to go", func() {
			req := httptest.NewRequest(http.MethodPost, "/lab/biology/canvas/pan", nil)
			req.Header.Set("Hx-Request", "true")
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("Hx-Redirect")).To(Equal("/login"))
		})

		It("passes the user through with a valid cookie", func() {
			token, err := svc.Issue(auth.User{Email: "a@b.co"})
			Expect(err).NotTo(HaveOccurred())

			set := httptest.NewRecorder()
			svc.SetCookie(set, token)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range set.Result().Cookies() {
				req.AddCookie(c)
			}

			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("a@b.co"))
		})

		It("clears the cookie on logout", func() {
			rec := httptest.NewRecorder()
			svc.ClearCookie(rec)
			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.CookieName))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})
	})
})
