package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calcpress/calcpress/internal/content"
)

// renderConverterScript emits the inline client script: the conversion
// data followed by a small widget driver. Lookup order matches the
// validator's documented precedence: the conversions matrix first (with a
// reciprocal fallback at runtime only), then formulas.
func (g *Generator) renderConverterScript(conv *content.Converter) string {
	matrix, err := json.Marshal(conv.Conversions)
	if err != nil {
		matrix = []byte("{}")
	}
	formulas, err := json.Marshal(conv.ConversionFormulas)
	if err != nil || string(formulas) == "null" {
		formulas = []byte("[]")
	}

	var js strings.Builder
	fmt.Fprintf(&js, "    var CONVERSIONS = %s;\n", matrix)
	fmt.Fprintf(&js, "    var FORMULAS = %s;\n", formulas)
	js.WriteString(`    function convert(value, from, to) {
      if (from === to) return value;
      var row = CONVERSIONS[from];
      if (row && typeof row[to] === "number") return value * row[to];
      var inverse = CONVERSIONS[to];
      if (inverse && typeof inverse[from] === "number" && inverse[from] !== 0) return value / inverse[from];
      for (var i = 0; i < FORMULAS.length; i++) {
        var f = FORMULAS[i];
        if (f.from === from && f.to === to) {
          try {
            return new Function("value", "return " + f.formula + ";")(value);
          } catch (e) {
            return NaN;
          }
        }
      }
      return NaN;
    }
    function update() {
      var value = parseFloat(document.getElementById("conv-value").value);
      var from = document.getElementById("conv-from").value;
      var to = document.getElementById("conv-to").value;
      var out = document.getElementById("conv-result");
      if (isNaN(value)) { out.textContent = ""; return; }
      var result = convert(value, from, to);
      out.textContent = isNaN(result) ? "n/a" : result.toLocaleString(undefined, {maximumFractionDigits: 6});
    }
    ["conv-value", "conv-from", "conv-to"].forEach(function(id) {
      var el = document.getElementById(id);
      if (el) el.addEventListener("input", update);
    });
    update();
`)

	return js.String()
}
