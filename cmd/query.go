package cmd

import (
	"fmt"
	"github.com/hashicorp/go-set/v3"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/shd101wyy/k-1/kore"
	"github.com/shd101wyy/k-1/subsorts"
	"github.com/spf13/cobra"
	"slices"
)

const noBound = "none"

func sortsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sorts",
		Short: "Print every sort of the module, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.lattice()
			if err != nil {
				return err
			}
			itr := s.AllSorts().Iterator()
			for !itr.Done() {
				sort, _ := itr.Next()
				fmt.Fprintln(cmd.OutOrStdout(), sort)
			}
			return nil
		},
	}
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build the lattice of the module and check it is a strict partial order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.lattice()
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sorts\n", s.Len())
			return nil
		},
	}
}

func subsortedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "subsorted BIG SMALL",
		Short: "Print whether BIG is a strict supersort of SMALL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, sorts, err := prepare(opts, args)
			if err != nil {
				return err
			}
			subsorted, err := s.Subsorted(sorts[0], sorts[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), subsorted)
			return nil
		},
	}
}

func commonCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "common SORT SORT",
		Short: "Print whether two sorts have a common strict subsort",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, sorts, err := prepare(opts, args)
			if err != nil {
				return err
			}
			defer kerr.Recover(&err)
			fmt.Fprintln(cmd.OutOrStdout(), s.HasCommonSubsort(sorts[0], sorts[1]))
			return nil
		},
	}
}

type boundQuery func(s *subsorts.Subsorts, sorts []kore.Sort) *set.Set[kore.Sort]

func upperBounds(s *subsorts.Subsorts, sorts []kore.Sort) *set.Set[kore.Sort] {
	return s.UpperBounds(sorts...)
}

func lowerBounds(s *subsorts.Subsorts, sorts []kore.Sort) *set.Set[kore.Sort] {
	return s.LowerBounds(sorts...)
}

func boundCmd(opts *options, use, short string, query boundQuery) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [SORT...]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, sorts, err := prepare(opts, args)
			if err != nil {
				return err
			}
			defer kerr.Recover(&err)
			bounds := query(s, sorts).Slice()
			slices.SortFunc(bounds, kore.SortComparer{}.Compare)
			for _, sort := range bounds {
				fmt.Fprintln(cmd.OutOrStdout(), sort)
			}
			return nil
		},
	}
}

type topQuery func(s *subsorts.Subsorts, sorts []kore.Sort) (kore.Sort, bool)

func lub(s *subsorts.Subsorts, sorts []kore.Sort) (kore.Sort, bool) {
	return s.LUB(sorts...)
}

func glb(s *subsorts.Subsorts, sorts []kore.Sort) (kore.Sort, bool) {
	return s.GLB(sorts...)
}

func topCmd(opts *options, use, short string, query topQuery) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [SORT...]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, sorts, err := prepare(opts, args)
			if err != nil {
				return err
			}
			defer kerr.Recover(&err)
			top, ok := query(s, sorts)
			if !ok {
				logger.Debug("no unique bound", "query", use, "sorts", fmt.Sprint(sorts))
				fmt.Fprintln(cmd.OutOrStdout(), noBound)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), top)
			return nil
		},
	}
}

func prepare(opts *options, args []string) (*subsorts.Subsorts, []kore.Sort, error) {
	sorts, err := parseSorts(args)
	if err != nil {
		return nil, nil, err
	}
	s, err := opts.lattice()
	if err != nil {
		return nil, nil, err
	}
	return s, sorts, nil
}
