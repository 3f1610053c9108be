package domain

import "sort"

// Group é o resultado da agregação de um valor por uma chave categórica
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// KeyFunc extrai a chave de agrupamento de uma venda
type KeyFunc func(Record) string

// ValueFunc extrai o valor somado de uma venda
type ValueFunc func(Record) float64

var (
	ByRegion  KeyFunc   = func(r Record) string { return r.Region }
	ByProduct KeyFunc   = func(r Record) string { return r.Product }
	SalesOf   ValueFunc = func(r Record) float64 { return r.Sales }
	ProfitOf  ValueFunc = func(r Record) float64 { return r.Profit }
)

// GroupSum agrupa as vendas pela chave e soma o valor de cada grupo.
// Os grupos saem na ordem em que a chave aparece pela primeira vez.
func GroupSum(ds *Dataset, key KeyFunc, value ValueFunc) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for i := 0; i < ds.Len(); i++ {
		record := ds.Row(i).Record
		k := key(record)

		pos, exists := index[k]
		if !exists {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, Group{Key: k})
		}

		groups[pos].Value += value(record)
		groups[pos].Count++
	}

	return groups
}

// SortGroupsDesc ordena por valor decrescente; empates ficam em ordem alfabética da chave
func SortGroupsDesc(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}
		return groups[i].Key < groups[j].Key
	})
}

// Top retorna o grupo de maior valor sem alterar a ordem da lista
func Top(groups []Group) (Group, bool) {
	if len(groups) == 0 {
		return Group{}, false
	}

	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	SortGroupsDesc(sorted)

	return sorted[0], true
}

// MinBy retorna a primeira venda com o menor valor
func MinBy(ds *Dataset, value ValueFunc) (Record, bool) {
	if ds.IsEmpty() {
		return Record{}, false
	}

	lowest := ds.Row(0).Record
	for i := 1; i < ds.Len(); i++ {
		record := ds.Row(i).Record
		if value(record) < value(lowest) {
			lowest = record
		}
	}

	return lowest, true
}
