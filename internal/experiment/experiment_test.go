package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/experiment"
	"github.com/san-kum/rootfind/internal/roots"
	"github.com/san-kum/rootfind/internal/telemetry"
)

func problem(method, fn string, a, b float64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Method = method
	cfg.Function = fn
	cfg.A = config.Float(a)
	cfg.B = config.Float(b)
	return cfg
}

// expiringCtx reports no error for its first n Err calls and
// DeadlineExceeded after that.
type expiringCtx struct {
	context.Context
	n int
}

func (c *expiringCtx) Err() error {
	if c.n > 0 {
		c.n--
		return nil
	}
	return context.DeadlineExceeded
}

var _ = Describe("Experiment", func() {
	var reg *experiment.Registry

	BeforeEach(func() {
		reg = experiment.NewRegistry()
	})

	Describe("Setup", func() {
		It("rejects a malformed function", func() {
			exp := experiment.New(problem("bisection", "(x + 2", 0, 1))
			Expect(exp.Setup(nil)).To(MatchError(ContainSubstring("function")))
		})

		It("rejects a malformed derivative", func() {
			cfg := problem("newton", "x^2 - 2", 1, 2)
			cfg.Derivative = "2*y"
			exp := experiment.New(cfg)
			Expect(exp.Setup(nil)).To(MatchError(ContainSubstring("derivative")))
		})

		It("must precede Run", func() {
			exp := experiment.New(problem("bisection", "x", -1, 1))
			_, err := exp.Run(context.Background())
			Expect(err).To(MatchError(experiment.ErrNotSetup))
		})
	})

	Describe("Run", func() {
		It("solves and reports diagnostics", func() {
			cfg := config.GetPreset("sqrt2")
			exp := experiment.New(cfg)
			Expect(exp.Setup(reg.DefaultMetrics())).To(Succeed())

			run, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Converged()).To(BeTrue())
			Expect(run.Method).To(Equal(roots.MethodBisection))
			Expect(run.Result.Root).To(BeNumerically("~", math.Sqrt2, 1e-9))
			Expect(run.History).NotTo(BeEmpty())
			Expect(run.Values).To(HaveLen(len(run.History)))
			Expect(run.Metrics).To(HaveKey("residual"))
			Expect(run.Metrics).To(HaveKey("contraction"))
			Expect(run.Metrics).To(HaveKey("order"))
			Expect(run.Metrics["abs_error"]).To(BeNumerically("<", 1e-9))
			Expect(run.Metrics).To(HaveKey("rel_error"))
		})

		It("counts every evaluation of the function", func() {
			exp := experiment.New(problem("bisection", "x - 0.3", 0, 1))
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Evaluations).To(Equal(int64(run.Result.Iterations + 2)))
		})

		It("leaves history off without metrics", func() {
			exp := experiment.New(problem("secant", "x^3 - 8", 0, 3))
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(run.History).To(BeNil())
			Expect(run.Result.Root).To(BeNumerically("~", 2, 1e-5))
		})

		It("keeps the partial history of a failed solve", func() {
			cfg := problem("bisection", "x - 0.3", 0, 1)
			cfg.MaxIter = 3
			cfg.History = true
			exp := experiment.New(cfg)
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(context.Background())
			Expect(err).To(MatchError(roots.ErrNoConvergence))
			Expect(run.Converged()).To(BeFalse())
			Expect(run.History).To(Equal([]float64{0.5, 0.25, 0.375}))
			Expect(run.Values).To(HaveLen(3))
			Expect(run.Result.Iterations).To(Equal(3))

			meta := run.Metadata()
			Expect(meta.Converged).To(BeFalse())
			Expect(meta.Error).To(ContainSubstring("did not converge"))
			Expect(run.Points()).To(HaveLen(3))
		})

		It("reports a missing parameter", func() {
			cfg := problem("secant", "x - 1", 0, 2)
			cfg.B = nil
			exp := experiment.New(cfg)
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(context.Background())
			Expect(err).To(MatchError(roots.ErrMissingParameter))
			Expect(run).NotTo(BeNil())
			Expect(run.Metadata().Method).To(Equal("secant"))
		})

		It("stops evaluating once the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			exp := experiment.New(problem("bisection", "x^2 - 2", 1, 2))
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(run.Converged()).To(BeFalse())
			Expect(run.Evaluations).To(BeNumerically(">", 0))
			Expect(run.Values).To(BeNil())
		})

		It("keeps the partial history of a canceled solve", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			cfg := problem("bisection", "x - 1", 0, 2)
			cfg.MaxIter = 5
			cfg.History = true
			exp := experiment.New(cfg)
			Expect(exp.Setup(nil)).To(Succeed())

			run, err := exp.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(run.History).To(HaveLen(5))
			Expect(run.Result.Iterations).To(Equal(5))
			Expect(run.Values).To(BeNil())

			points := run.Points()
			Expect(points).To(HaveLen(5))
			for _, p := range points {
				Expect(math.IsNaN(p.FX)).To(BeTrue())
			}
		})

		It("evaluates a finished solve even if the deadline passes afterwards", func() {
			cfg := problem("bisection", "x - 1", 0, 2)
			cfg.History = true
			exp := experiment.New(cfg)
			Expect(exp.Setup(nil)).To(Succeed())

			// f(a), f(b) and f(1) = 0 take exactly three evaluations.
			run, err := exp.Run(&expiringCtx{Context: context.Background(), n: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Evaluations).To(Equal(int64(3)))
			Expect(run.History).To(Equal([]float64{1}))
			Expect(run.Values).To(Equal([]float64{0}))

			points := run.Points()
			Expect(points).To(HaveLen(1))
			Expect(points[0].FX).To(Equal(0.0))
		})

		It("records outcomes in the recorder", func() {
			rec := telemetry.NewRecorder()
			exp := experiment.New(config.GetPreset("cubic"), experiment.WithRecorder(rec))
			Expect(exp.Setup(nil)).To(Succeed())
			_, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			rows, err := rec.Summary()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Method).To(Equal("bisection"))
			Expect(rows[0].Solves).To(Equal(1.0))
			Expect(rows[0].Outcomes).To(HaveKeyWithValue(telemetry.OutcomeConverged, 1.0))
		})
	})

	Describe("Compare", func() {
		It("runs every method in order", func() {
			cfg := config.GetPreset("cubic")
			runs, err := experiment.Compare(context.Background(), cfg, nil, reg)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(3))

			for i, m := range roots.Methods() {
				Expect(runs[i].Method).To(Equal(m))
				Expect(runs[i].Err).NotTo(HaveOccurred())
				Expect(runs[i].Result.Root).To(BeNumerically("~", 0.5768888, 1e-5))
			}
		})

		It("keeps solver failures inside the runs", func() {
			cfg := problem("bisection", "x^2 + 1", -1, 1)
			runs, err := experiment.Compare(context.Background(), cfg, []string{"b", "secant"}, reg)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs[0].Err).To(MatchError(roots.ErrInvalidBracket))
			Expect(runs[1].Method).To(Equal(roots.MethodSecant))
		})

		It("aborts on an unknown method", func() {
			_, err := experiment.Compare(context.Background(), config.GetPreset("cubic"), []string{"regula-falsi"}, reg)
			Expect(err).To(MatchError(roots.ErrInvalidMethod))
		})

		It("aborts on a malformed function", func() {
			_, err := experiment.Compare(context.Background(), problem("newton", "sin(", 0, 1), nil, reg)
			Expect(err).To(HaveOccurred())
		})

		It("does not touch the caller's config", func() {
			cfg := config.GetPreset("cubic")
			_, err := experiment.Compare(context.Background(), cfg, []string{"newton"}, reg)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Method).To(Equal("bisection"))
		})
	})
})

var _ = Describe("Registry", func() {
	It("lists metrics by name", func() {
		reg := experiment.NewRegistry()
		Expect(reg.ListMetrics()).To(Equal([]string{"contraction", "order", "residual"}))
		Expect(reg.ListMethods()).To(Equal([]string{"bisection", "newton", "secant"}))
	})

	It("rejects unknown metrics", func() {
		_, err := experiment.NewRegistry().GetMetric("energy")
		Expect(err).To(MatchError(ContainSubstring("unknown metric")))
	})

	It("builds fresh instances", func() {
		reg := experiment.NewRegistry()
		a, err := reg.GetMetric("residual")
		Expect(err).NotTo(HaveOccurred())
		b, err := reg.GetMetric("residual")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(BeIdenticalTo(b))
	})
})
