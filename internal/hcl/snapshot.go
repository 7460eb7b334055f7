package hcl

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/wupperinst/itom/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// SnapshotFile is the name of the resolved configuration written next to
// the run outputs.
const SnapshotFile = "run.hcl"

// WriteSnapshot writes r as a single run block that Load reads back to the
// same configuration. Unset optional choices are left out.
func WriteSnapshot(w io.Writer, r *config.Run) error {
	f := hclwrite.NewEmptyFile()
	b := f.Body().AppendNewBlock("run", []string{r.Name}).Body()

	b.SetAttributeValue("input_dir", cty.StringVal(r.InputDir))
	b.SetAttributeValue("output_dir", cty.StringVal(r.OutputDir))
	b.SetAttributeValue("hub", cty.BoolVal(r.Hub))
	b.SetAttributeValue("retrofit", cty.BoolVal(r.Retrofit))
	b.SetAttributeValue("impurities", cty.BoolVal(r.Impurities))
	b.SetAttributeValue("sentinel", cty.NumberFloatVal(r.Sentinel))
	if r.SalvageOffset != "" {
		b.SetAttributeValue("salvage_offset", cty.StringVal(r.SalvageOffset))
	}
	if r.EmissionRatioTest != "" {
		b.SetAttributeValue("emission_ratio_test", cty.StringVal(r.EmissionRatioTest))
	}
	if r.RetrofitSlack != nil {
		b.SetAttributeValue("retrofit_slack", cty.NumberFloatVal(*r.RetrofitSlack))
	}
	b.SetAttributeValue("keep_saturated_rows", cty.BoolVal(r.KeepSaturatedRows))
	if r.Workers > 0 {
		b.SetAttributeValue("workers", cty.NumberIntVal(int64(r.Workers)))
	}
	b.SetAttributeValue("outputs", stringList(r.Outputs))

	b.AppendNewline()
	s := b.AppendNewBlock("solve", nil).Body()
	s.SetAttributeValue("enabled", cty.BoolVal(r.Solve))
	s.SetAttributeValue("tolerance", cty.NumberFloatVal(r.SolverTolerance))
	s.SetAttributeValue("max_columns", cty.NumberIntVal(int64(r.SolverMaxColumns)))

	if _, err := w.Write(f.Bytes()); err != nil {
		return fmt.Errorf("failed to write run snapshot: %w", err)
	}
	return nil
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
