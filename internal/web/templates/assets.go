package templates

const pageCSS = `
body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2328}
main{max-width:1100px;margin:0 auto;padding:1.5rem}
h1{margin:.2rem 0}.caption,.hint{color:#59636e}
section{background:#fff;border:1px solid #d1d9e0;border-radius:8px;padding:1rem;margin:1rem 0}
.grid{display:grid;grid-template-columns:2fr 1fr 1fr 1fr;gap:.75rem}
label{display:flex;flex-direction:column;gap:.25rem;font-size:.9rem}
label.check{flex-direction:row;align-items:center}
.actions{display:flex;gap:.5rem;flex-wrap:wrap}
button{padding:.5rem .9rem;border-radius:6px;border:1px solid #d1d9e0;background:#f6f8fa;cursor:pointer}
button.primary{background:#1f883d;color:#fff;border-color:#1a7f37}
.metrics{display:flex;gap:1rem}.metric{flex:1}.metric strong{display:block;font-size:1.6rem}
.table-wrap{overflow:auto;max-height:420px}
table{border-collapse:collapse;width:100%;font-size:.85rem}
th,td{border:1px solid #d1d9e0;padding:.25rem .5rem;text-align:left}
td.empty{color:#59636e;text-align:center}
.alert{background:#ffebe9;border:1px solid #ff8182;border-radius:8px;padding:.75rem;margin:1rem 0}
.status{color:#1a7f37;font-size:.85rem;min-height:1em}.status.error{color:#cf222e}
`

// pageJS fills the column selects from /api/columns and runs the form
// in place so the chosen files stay selected for the download buttons.
const pageJS = `
(function(){
  const form = document.getElementById('run-form');
  const result = document.getElementById('result');

  async function loadColumns(side){
    const file = form.elements['file_' + side].files[0];
    const select = document.getElementById('col_' + side);
    const status = document.getElementById('status_' + side);
    select.innerHTML = '';
    status.textContent = '';
    status.classList.remove('error');
    if (!file) return;
    const data = new FormData();
    data.append('file', file);
    data.append('sep', form.elements['sep_' + side].value);
    data.append('custom_sep', form.elements['custom_sep_' + side].value);
    data.append('header', form.elements['header_' + side].value);
    const resp = await fetch('/api/columns', {method: 'POST', body: data, headers: {'Accept': 'application/json'}});
    const body = await resp.json();
    if (!resp.ok) {
      status.textContent = body.message + ' (' + body.code + ')';
      status.classList.add('error');
      return;
    }
    body.columns.forEach(function(name, i){
      const opt = document.createElement('option');
      opt.value = '#' + i;
      opt.textContent = name;
      select.appendChild(opt);
    });
    status.textContent = 'Archivo ' + side.toUpperCase() + ' cargado: ' + body.rows + ' filas × ' + body.columns.length + ' columnas';
  }

  ['a','b'].forEach(function(side){
    ['file_','sep_','custom_sep_','header_'].forEach(function(prefix){
      form.elements[prefix + side].addEventListener('change', function(){ loadColumns(side); });
    });
  });

  form.addEventListener('submit', async function(ev){
    const action = ev.submitter && ev.submitter.getAttribute('formaction');
    if (action) return;
    ev.preventDefault();
    const resp = await fetch('/run', {method: 'POST', body: new FormData(form), headers: {'HX-Request': 'true'}});
    result.innerHTML = await resp.text();
  });
})();
`
