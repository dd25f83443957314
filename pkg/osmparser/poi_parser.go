package osmparser

import (
	"context"
	"os"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// PoiParser extracts safety-relevant points of interest from an openstreetmap
// pbf extract, as an offline alternative to the places API collaborator.
type PoiParser struct {
	log *zap.Logger
}

func NewPoiParser(log *zap.Logger) *PoiParser {
	return &PoiParser{log: log}
}

// osm tag values accepted per category:
// https://wiki.openstreetmap.org/wiki/Key:amenity, Key:railway
var amenityCategory = map[string]pkg.PlaceCategory{
	"hospital": pkg.HOSPITAL,
	"police":   pkg.POLICE,
	"fuel":     pkg.GAS_STATION,
}

/*
ParsePois. scan every node of the pbf file and keep named hospital, police,
fuel and train station nodes inside the bounding box (nil box = keep all).
ways and relations are skipped; POI coordinates come from node geometry only.
*/
func (p *PoiParser) ParsePois(ctx context.Context, pbfFile string,
	bb *datastructure.BoundingBox) ([]datastructure.PointOfInterest, error) {

	f, err := os.Open(pbfFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pois := make([]datastructure.PointOfInterest, 0)

	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()
		node, ok := o.(*osm.Node)
		if !ok {
			continue
		}

		category, ok := categoryOfNode(node)
		if !ok {
			continue
		}
		if bb != nil && !bb.Contains(node.Lat, node.Lon) {
			continue
		}

		name := node.Tags.Find("name")
		if name == "" {
			continue
		}

		pois = append(pois, datastructure.NewPointOfInterest(int64(node.ID), category,
			name, node.Tags.Find("addr:street"), geo.NewCoordinate(node.Lat, node.Lon)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.log.Info("parsed POIs from pbf extract",
		zap.String("file", pbfFile), zap.Int("pois", len(pois)))

	return pois, nil
}

func categoryOfNode(node *osm.Node) (pkg.PlaceCategory, bool) {
	if cat, ok := amenityCategory[node.Tags.Find("amenity")]; ok {
		return cat, true
	}
	if node.Tags.Find("railway") == "station" {
		return pkg.TRAIN_STATION, true
	}
	return pkg.UNKNOWN_PLACE, false
}
