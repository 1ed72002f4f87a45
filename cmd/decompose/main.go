// Command decompose reads a WKT POLYGON literal and prints the simple
// rings produced by decomposing it, one per line as WKT POLYGON literals
// annotated with their winding, net winding, and parent index. It follows
// the teacher's cmd/gen CLI shape: standard flag for configuration, standard
// log for diagnostics, no config file or env-var layer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mclaeysb/simplepolygon/decompose"
	"github.com/mclaeysb/simplepolygon/geom"
)

func main() {
	input := flag.String("wkt", "", "WKT POLYGON literal to decompose (reads stdin if empty)")
	flag.Parse()

	wkt := *input
	if wkt == "" {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
		wkt = string(data)
	}

	poly, err := geom.UnmarshalWKTPolygon(wkt)
	if err != nil {
		log.Fatalf("parsing WKT: %v", err)
	}

	result, err := decompose.Decompose(poly)
	if err != nil {
		log.Fatalf("decomposing polygon: %v", err)
	}

	log.Printf("produced %d output ring(s)", len(result.Rings))
	for i, r := range result.Rings {
		out := geom.Polygon{Rings: []geom.Ring{r.Coords}}
		fmt.Printf("%d\tparent=%d\twinding=%+d\tnetWinding=%+d\t%s\n",
			i, r.Parent, r.Winding, r.NetWinding, out.AsWKT())
	}
}
