package validated_test

import (
	"bytes"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/validated"
)

var _ = Describe("Integrate", func() {
	Describe("exponential growth from a point", func() {
		It("encloses e at t=1 for every time order", func() {
			var widths []float64
			for _, orderT := range []int{8, 12, 16, 20} {
				res, err := validated.Integrate(growth{}, []float64{1}, interval.Box{interval.Zero()},
					0, 1, 1, orderT, 1e-20)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Status).To(Equal(validated.StatusDone))
				Expect(res.Times[len(res.Times)-1]).To(Equal(1.0))

				final := res.Final()[0]
				Expect(final.Contains(math.E)).To(BeTrue(), "order %d: %v", orderT, final)
				widths = append(widths, final.Width())
			}
			for _, w := range widths {
				Expect(w).To(BeNumerically("<", 1e-10))
			}
			Expect(widths[len(widths)-1]).To(BeNumerically("<=", 10*widths[0]))
		})

		It("takes fewer steps at higher order", func() {
			low, err := validated.Integrate(growth{}, []float64{1}, interval.Box{interval.Zero()}, 0, 1, 1, 10, 1e-20)
			Expect(err).NotTo(HaveOccurred())
			high, err := validated.Integrate(growth{}, []float64{1}, interval.Box{interval.Zero()}, 0, 1, 1, 18, 1e-20)
			Expect(err).NotTo(HaveOccurred())
			Expect(high.Steps).To(BeNumerically("<", low.Steps))
		})
	})

	Describe("step budget", func() {
		It("returns one accepted step and flags the budget", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			res, err := validated.Integrate(growth{}, []float64{1}, interval.Box{interval.Zero()},
				0, 10, 1, 6, 1e-20, validated.WithMaxSteps(1), validated.WithLogger(logger))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(1))
			Expect(res.Status).To(Equal(validated.StatusStepBudgetExceeded))
			Expect(res.Times).To(HaveLen(2))
			Expect(res.Boxes).To(HaveLen(2))
			Expect(res.Models).To(HaveLen(2))
			Expect(res.StepModels).To(HaveLen(1))
			Expect(res.Times[1]).To(BeNumerically("<", 10))
			Expect(buf.String()).To(ContainSubstring("step budget exhausted"))
		})
	})

	Describe("nested initial boxes", func() {
		type problem struct {
			name  string
			run   func(dq0 interval.Box) *validated.Result
			small interval.Box
			big   interval.Box
		}
		problems := []problem{
			{
				name: "growth",
				run: func(dq0 interval.Box) *validated.Result {
					res, err := validated.Integrate(growth{}, []float64{1}, dq0, 0, 2, 1, 10, 1e-18)
					Expect(err).NotTo(HaveOccurred())
					return res
				},
				small: interval.Box{interval.New(-0.01, 0.01)},
				big:   interval.Box{interval.New(-0.1, 0.1)},
			},
			{
				name: "rotation",
				run: func(dq0 interval.Box) *validated.Result {
					res, err := validated.Integrate(rotation{}, []float64{1, 0}, dq0, 0, 1, 1, 10, 1e-18)
					Expect(err).NotTo(HaveOccurred())
					return res
				},
				small: interval.Box{interval.New(-0.01, 0.01), interval.New(-0.02, 0.02)},
				big:   interval.Box{interval.New(-0.1, 0.1), interval.New(-0.05, 0.05)},
			},
		}

		for _, p := range problems {
			It("keeps the small enclosure inside the big one for "+p.name, func() {
				Expect(p.small.Subset(p.big)).To(BeTrue())
				small, big := p.run(p.small), p.run(p.big)

				Expect(big.Times).To(Equal(small.Times))
				for j := range small.Times {
					Expect(small.Boxes[j].Subset(big.Boxes[j])).To(BeTrue(),
						"t=%g: %v not in %v", small.Times[j], small.Boxes[j], big.Boxes[j])
					Expect(small.Endpoints[j].Subset(big.Endpoints[j])).To(BeTrue(),
						"t=%g: %v not in %v", small.Times[j], small.Endpoints[j], big.Endpoints[j])
				}
			})
		}
	})

	Describe("model invariants", func() {
		It("holds for every stored model", func() {
			res, err := validated.Integrate(quadratic{}, []float64{1}, interval.Box{interval.New(-0.01, 0.01)},
				0, 1, 3, 12, 1e-16)
			Expect(err).NotTo(HaveOccurred())

			for j, models := range res.Models {
				for _, m := range models {
					Expect(m.Center().Subset(m.Domain())).To(BeTrue(), "sample %d", j)
					Expect(m.Rem().ContainsZero()).To(BeTrue(), "sample %d", j)
				}
			}
			for j, models := range res.StepModels {
				for _, m := range models {
					Expect(m.X0().Subset(m.Dom())).To(BeTrue(), "step %d", j+1)
					Expect(m.Rem().ContainsZero()).To(BeTrue(), "step %d", j+1)
					Expect(m.Dom().Lo).To(Equal(0.0))
				}
			}
		})

		It("encloses the exact solution of a nonlinear field", func() {
			res, err := validated.Integrate(quadratic{}, []float64{1}, interval.Box{interval.New(-0.01, 0.01)},
				0, 1, 3, 12, 1e-16)
			Expect(err).NotTo(HaveOccurred())

			for _, x0 := range []float64{0.99, 1, 1.01} {
				for j, t := range res.Times {
					exact := x0 / (1 + x0*t)
					Expect(res.Endpoints[j][0].Contains(exact)).To(BeTrue(),
						"x0=%g t=%g: %v", x0, t, res.Endpoints[j][0])
				}
			}
		})
	})

	Describe("observers", func() {
		It("sees every accepted step in order", func() {
			var seen []validated.Sample
			obs := validated.ObserverFunc(func(s validated.Sample) { seen = append(seen, s) })

			res, err := validated.Integrate(rotation{}, []float64{1, 0}, interval.Symmetric(2).Mul(interval.Point(1e-3)),
				0, 2, 1, 8, 1e-14, validated.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(res.Steps))
			for k, s := range seen {
				Expect(s.Step).To(Equal(k + 1))
				Expect(s.Time).To(Equal(res.Times[k+1]))
				Expect(s.Box.Subset(res.Boxes[k+1]) && res.Boxes[k+1].Subset(s.Box)).To(BeTrue())
				Expect(s.Converged).To(BeTrue())
			}
		})
	})
})
